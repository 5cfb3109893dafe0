package compliance

import (
	"encoding/hex"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/xuperchain/compliancecore/kernel/compliance/utils"
)

func TestBatchLifecycle(t *testing.T) {
	env := newTestEnv(t)
	env.assignRole(testVendor, "1")
	env.assignRole(testInspector, "2")

	resp := env.mustInvoke(testVendor, "CreateBatch", batchArgs("B-100"))
	if string(resp.Body) != "0" {
		t.Fatalf("create should return state 0, got %s", resp.Body)
	}
	resp = env.mustInvoke(testNobody, "GetBatchStatus", batchArgs("B-100"))
	if string(resp.Body) != "0" {
		t.Fatalf("expect state 0, got %s", resp.Body)
	}

	resp = env.mustInvoke(testInspector, "ApproveBatch", batchArgs("B-100"))
	if string(resp.Body) != "1" {
		t.Fatalf("approve should return state 1, got %s", resp.Body)
	}

	resp = env.mustInvoke(testInspector, "CertifyBatch", batchArgs("B-100"))
	if string(resp.Body) != "2" {
		t.Fatalf("certify should return state 2, got %s", resp.Body)
	}
	resp = env.mustInvoke(testNobody, "GetBatchAsset", batchArgs("B-100"))
	if string(resp.Body) == "0" {
		t.Fatal("certified batch should hold a nonzero asset id")
	}

	// 已认证批次不允许再次认证
	_, err := env.invoke(testInspector, "CertifyBatch", batchArgs("B-100"))
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expect ErrInvalidTransition, got %v", err)
	}
}

func TestUnknownBatchSentinels(t *testing.T) {
	env := newTestEnv(t)

	resp := env.mustInvoke(testNobody, "GetBatchStatus", batchArgs("never-created"))
	if string(resp.Body) != "99" {
		t.Fatalf("unknown batch should report 99, got %s", resp.Body)
	}
	resp = env.mustInvoke(testNobody, "GetBatchAsset", batchArgs("never-created"))
	if string(resp.Body) != "0" {
		t.Fatalf("unknown batch asset should be 0, got %s", resp.Body)
	}
}

func TestCreateBatchDuplicate(t *testing.T) {
	env := newTestEnv(t)
	env.assignRole(testVendor, "1")

	env.mustInvoke(testVendor, "CreateBatch", batchArgs("B-1"))
	_, err := env.invoke(testVendor, "CreateBatch", batchArgs("B-1"))
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expect ErrAlreadyExists, got %v", err)
	}

	// 重复创建失败后状态不变
	resp := env.mustInvoke(testNobody, "GetBatchStatus", batchArgs("B-1"))
	if string(resp.Body) != "0" {
		t.Fatalf("state should stay 0, got %s", resp.Body)
	}
}

func TestRoleGates(t *testing.T) {
	env := newTestEnv(t)
	env.assignRole(testVendor, "1")
	env.assignRole(testInspector, "2")

	// 非管理员不能分配角色
	_, err := env.invoke(testVendor, "AssignRole", map[string][]byte{
		"account": []byte(testNobody),
		"role":    []byte("1"),
	})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expect ErrUnauthorized, got %v", err)
	}

	// 未分配角色的账户不能创建批次
	if _, err = env.invoke(testNobody, "CreateBatch", batchArgs("B-x")); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expect ErrUnauthorized, got %v", err)
	}
	// 质检员不能创建批次，管理员也不能
	if _, err = env.invoke(testInspector, "CreateBatch", batchArgs("B-x")); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expect ErrUnauthorized, got %v", err)
	}
	if _, err = env.invoke(testAdmin, "CreateBatch", batchArgs("B-x")); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expect ErrUnauthorized, got %v", err)
	}

	env.mustInvoke(testVendor, "CreateBatch", batchArgs("B-x"))

	// 厂商不能审批
	if _, err = env.invoke(testVendor, "ApproveBatch", batchArgs("B-x")); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expect ErrUnauthorized, got %v", err)
	}
	// 管理员也不能审批，只有质检员可以
	if _, err = env.invoke(testAdmin, "ApproveBatch", batchArgs("B-x")); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expect ErrUnauthorized, got %v", err)
	}
	env.mustInvoke(testInspector, "ApproveBatch", batchArgs("B-x"))

	// 厂商不能认证，管理员可以
	if _, err = env.invoke(testVendor, "CertifyBatch", batchArgs("B-x")); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expect ErrUnauthorized, got %v", err)
	}
	env.mustInvoke(testAdmin, "CertifyBatch", batchArgs("B-x"))
}

func TestAssignRoleValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.invoke(testAdmin, "AssignRole", map[string][]byte{
		"account": []byte(testVendor),
		"role":    []byte("3"),
	})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expect ErrInvalidArgument for role 3, got %v", err)
	}
	for _, role := range []string{"0", "99", "abc", ""} {
		_, err = env.invoke(testAdmin, "AssignRole", map[string][]byte{
			"account": []byte(testVendor),
			"role":    []byte(role),
		})
		if !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("expect ErrInvalidArgument for role %q, got %v", role, err)
		}
	}
	_, err = env.invoke(testAdmin, "AssignRole", map[string][]byte{
		"account": []byte(""),
		"role":    []byte("1"),
	})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expect ErrInvalidArgument for empty account, got %v", err)
	}
}

func TestGetRole(t *testing.T) {
	env := newTestEnv(t)
	env.assignRole(testVendor, "1")

	cases := map[string]string{
		testAdmin:     "0",
		testVendor:    "1",
		testNobody:    "99",
		testInspector: "99",
	}
	for account, want := range cases {
		resp := env.mustInvoke(testNobody, "GetRole", map[string][]byte{
			"account": []byte(account),
		})
		if string(resp.Body) != want {
			t.Fatalf("role of %s: expect %s got %s", account, want, resp.Body)
		}
	}

	// 角色可以被管理员覆盖
	env.assignRole(testVendor, "2")
	resp := env.mustInvoke(testNobody, "GetRole", map[string][]byte{
		"account": []byte(testVendor),
	})
	if string(resp.Body) != "2" {
		t.Fatalf("expect overwritten role 2, got %s", resp.Body)
	}
}

func TestTransitionOrder(t *testing.T) {
	env := newTestEnv(t)
	env.assignRole(testVendor, "1")
	env.assignRole(testInspector, "2")

	// 不存在的批次
	_, err := env.invoke(testInspector, "ApproveBatch", batchArgs("ghost"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expect ErrNotFound, got %v", err)
	}
	if _, err = env.invoke(testInspector, "CertifyBatch", batchArgs("ghost")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expect ErrNotFound, got %v", err)
	}

	env.mustInvoke(testVendor, "CreateBatch", batchArgs("B-7"))

	// 不能跳过审批直接认证
	if _, err = env.invoke(testInspector, "CertifyBatch", batchArgs("B-7")); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expect ErrInvalidTransition, got %v", err)
	}

	env.mustInvoke(testInspector, "ApproveBatch", batchArgs("B-7"))

	// 不能重复审批
	if _, err = env.invoke(testInspector, "ApproveBatch", batchArgs("B-7")); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expect ErrInvalidTransition, got %v", err)
	}
}

func TestVendorBatchList(t *testing.T) {
	env := newTestEnv(t)
	env.assignRole(testVendor, "1")
	env.assignRole(testNobody, "1")

	resp := env.mustInvoke(testInspector, "GetVendorBatches", map[string][]byte{
		"vendor": []byte(testVendor),
	})
	if string(resp.Body) != "" {
		t.Fatalf("expect empty list, got %s", resp.Body)
	}

	for i := 0; i < 3; i++ {
		env.mustInvoke(testVendor, "CreateBatch", batchArgs(fmt.Sprintf("B-%d", i)))
	}
	env.mustInvoke(testNobody, "CreateBatch", batchArgs("OTHER-1"))

	resp = env.mustInvoke(testInspector, "GetVendorBatches", map[string][]byte{
		"vendor": []byte(testVendor),
	})
	if string(resp.Body) != "B-0|B-1|B-2" {
		t.Fatalf("unexpected vendor list %s", resp.Body)
	}

	resp = env.mustInvoke(testInspector, "GetVendorBatches", map[string][]byte{
		"vendor": []byte(testNobody),
	})
	if string(resp.Body) != "OTHER-1" {
		t.Fatalf("unexpected vendor list %s", resp.Body)
	}
}

func TestBatchIdValidation(t *testing.T) {
	env := newTestEnv(t)
	env.assignRole(testVendor, "1")

	// 批次号不允许为空或包含列表分隔符
	for _, id := range []string{"", "a|b"} {
		_, err := env.invoke(testVendor, "CreateBatch", batchArgs(id))
		if !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("expect ErrInvalidArgument for %q, got %v", id, err)
		}
	}
}

func TestCertificationUniqueness(t *testing.T) {
	env := newTestEnv(t)
	env.assignRole(testVendor, "1")
	env.assignRole(testInspector, "2")

	assetIds := make(map[string]bool)
	for i := 0; i < 3; i++ {
		batchId := fmt.Sprintf("B-%d", i)
		env.mustInvoke(testVendor, "CreateBatch", batchArgs(batchId))
		env.mustInvoke(testInspector, "ApproveBatch", batchArgs(batchId))
		env.mustInvoke(testInspector, "CertifyBatch", batchArgs(batchId))

		resp := env.mustInvoke(testNobody, "GetBatchAsset", batchArgs(batchId))
		assetId := string(resp.Body)
		if assetId == "0" {
			t.Fatal("asset id should be nonzero")
		}
		if assetIds[assetId] {
			t.Fatalf("asset id %s minted twice", assetId)
		}
		assetIds[assetId] = true
	}
}

func TestAssetDefinition(t *testing.T) {
	env := newTestEnv(t)
	env.assignRole(testVendor, "1")
	env.assignRole(testInspector, "2")

	env.mustInvoke(testVendor, "CreateBatch", batchArgs("B-9"))
	env.mustInvoke(testInspector, "ApproveBatch", batchArgs("B-9"))
	env.mustInvoke(testInspector, "CertifyBatch", batchArgs("B-9"))

	vd, err := env.model.Get(utils.GetAssetMetaBucket(), utils.GetAssetDefKey(1))
	if err != nil {
		t.Fatal(err)
	}
	if vd.GetPureData().GetValue() == nil {
		t.Fatal("asset definition not stored")
	}
	want := fmt.Sprintf("%q", utils.MakeAssetName("B-9"))
	if !strings.Contains(string(vd.GetPureData().GetValue()), want) {
		t.Fatalf("asset definition should carry name %s: %s", want, vd.GetPureData().GetValue())
	}
}

func TestAuditEvents(t *testing.T) {
	env := newTestEnv(t)
	env.assignRole(testVendor, "1")
	env.assignRole(testInspector, "2")
	env.mustInvoke(testVendor, "CreateBatch", batchArgs("B-5"))

	// 失败的调用不产生事件
	env.invoke(testVendor, "CreateBatch", batchArgs("B-5"))

	names := []string{"assign_role", "assign_role", "create_batch"}
	if len(env.events) != len(names) {
		t.Fatalf("expect %d events got %d", len(names), len(env.events))
	}
	for i, event := range env.events {
		if event.Name != names[i] {
			t.Fatalf("event %d: expect %s got %s", i, names[i], event.Name)
		}
		if event.Contract != utils.SubModName {
			t.Fatalf("unexpected event contract %s", event.Contract)
		}
	}

	wantBody := fmt.Sprintf("create_batch|%s|%s",
		hex.EncodeToString([]byte("B-5")),
		hex.EncodeToString([]byte(testVendor)))
	if string(env.events[2].Body) != wantBody {
		t.Fatalf("unexpected event body %s", env.events[2].Body)
	}
}

func TestFailedCallDiscardsWrites(t *testing.T) {
	env := newTestEnv(t)
	env.assignRole(testVendor, "1")
	env.mustInvoke(testVendor, "CreateBatch", batchArgs("B-1"))

	// 重复创建失败，厂商列表不应该追加第二次
	env.invoke(testVendor, "CreateBatch", batchArgs("B-1"))

	resp := env.mustInvoke(testNobody, "GetVendorBatches", map[string][]byte{
		"vendor": []byte(testVendor),
	})
	if string(resp.Body) != "B-1" {
		t.Fatalf("failed create leaked writes: %s", resp.Body)
	}
}

func TestManagerSnapshotQuery(t *testing.T) {
	env := newTestEnv(t)
	env.assignRole(testVendor, "1")
	env.assignRole(testInspector, "2")
	env.mustInvoke(testVendor, "CreateBatch", batchArgs("B-3"))
	env.mustInvoke(testInspector, "ApproveBatch", batchArgs("B-3"))
	env.mustInvoke(testInspector, "CertifyBatch", batchArgs("B-3"))

	ctx, err := NewComplianceCtx("compliance", testAdmin, env.mgr, env.model, nil)
	if err != nil {
		t.Fatal(err)
	}
	mgr := &Manager{Ctx: ctx}

	role, err := mgr.GetRole(testVendor)
	if err != nil || role != utils.RoleVendor {
		t.Fatalf("GetRole: %d, %v", role, err)
	}
	role, _ = mgr.GetRole(testAdmin)
	if role != utils.RoleAdmin {
		t.Fatalf("admin role should be 0, got %d", role)
	}
	status, err := mgr.GetBatchStatus("B-3")
	if err != nil || status != utils.StatusCertified {
		t.Fatalf("GetBatchStatus: %d, %v", status, err)
	}
	status, _ = mgr.GetBatchStatus("ghost")
	if status != utils.StatusNotFound {
		t.Fatalf("unknown batch should be 99, got %d", status)
	}
	assetId, err := mgr.GetBatchAsset("B-3")
	if err != nil || assetId == 0 {
		t.Fatalf("GetBatchAsset: %d, %v", assetId, err)
	}
	batches, err := mgr.GetVendorBatches(testVendor)
	if err != nil || len(batches) != 1 || batches[0] != "B-3" {
		t.Fatalf("GetVendorBatches: %v, %v", batches, err)
	}
}
