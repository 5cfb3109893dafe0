package utils

import (
	"encoding/binary"
	"strconv"
	"strings"
)

const (
	StatusOK = 200

	SubModName = "$compliance"
)

// 角色编码。0和99不落库：0是管理员的隐含角色，99表示未分配
const (
	RoleAdmin     uint64 = 0
	RoleVendor    uint64 = 1
	RoleInspector uint64 = 2
	RoleNone      uint64 = 99
)

// 批次状态编码，只允许 0 -> 1 -> 2 单向推进
const (
	StatusCreated   uint64 = 0
	StatusApproved  uint64 = 1
	StatusCertified uint64 = 2
	StatusNotFound  uint64 = 99
)

// 厂商批次列表的分隔符，批次号里禁止出现
const BatchListDelimiter = "|"

// 凭证资产名前缀，资产名 = 前缀 + 批次号
const AssetNamePrefix = "CERT-"

func GetRoleBucket() string {
	return "role"
}

func GetBatchBucket() string {
	return "batch"
}

func GetAssetBucket() string {
	return "asset"
}

func GetVendorBucket() string {
	return "vendor"
}

// GetAssetMetaBucket 资产元信息bucket，保存发号器和资产定义
func GetAssetMetaBucket() string {
	return "$asset"
}

func GetLastAssetIdKey() []byte {
	return []byte("last_id")
}

func GetAssetDefKey(assetId uint64) []byte {
	return []byte("asset_" + strconv.FormatUint(assetId, 10))
}

func MakeAssetName(batchId string) string {
	return AssetNamePrefix + batchId
}

// EncU64/DecU64 统一用8字节大端序存储数值
func EncU64(v uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return buf
}

func DecU64(buf []byte) uint64 {
	if len(buf) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(buf)
}

func IsValidRole(role uint64) bool {
	return role == RoleVendor || role == RoleInspector
}

func IsValidBatchId(batchId string) bool {
	if batchId == "" {
		return false
	}
	return !strings.Contains(batchId, BatchListDelimiter)
}

func JoinBatchList(batchIds []string) string {
	return strings.Join(batchIds, BatchListDelimiter)
}

func SplitBatchList(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, BatchListDelimiter)
}

func AppendBatchList(raw string, batchId string) string {
	if raw == "" {
		return batchId
	}
	return raw + BatchListDelimiter + batchId
}
