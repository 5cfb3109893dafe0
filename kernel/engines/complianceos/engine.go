package complianceos

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/xuperchain/compliancecore/kernel/common/xconfig"
	"github.com/xuperchain/compliancecore/kernel/compliance"
	cutils "github.com/xuperchain/compliancecore/kernel/compliance/utils"
	"github.com/xuperchain/compliancecore/kernel/contract"
	_ "github.com/xuperchain/compliancecore/kernel/contract/manager"
	engconf "github.com/xuperchain/compliancecore/kernel/engines/complianceos/config"
	"github.com/xuperchain/compliancecore/kernel/state"
	"github.com/xuperchain/compliancecore/lib/logs"
	"github.com/xuperchain/compliancecore/lib/metrics"
	"github.com/xuperchain/compliancecore/lib/storage/kvdb"
	_ "github.com/xuperchain/compliancecore/lib/storage/kvdb/badger"
	_ "github.com/xuperchain/compliancecore/lib/storage/kvdb/leveldb"
	"github.com/xuperchain/compliancecore/lib/timer"
	"github.com/xuperchain/compliancecore/lib/utils"
)

const (
	// 内核合约所属模块名
	KernModule = "xkernel"
)

var registerMetricsOnce sync.Once

// Engine 合规账本执行引擎。一次调用处理完才开始下一次，
// 每次调用在沙盒里执行，成功则读写集和审计事件整体落库，失败则整体丢弃
type Engine struct {
	// 调用串行化
	mutex sync.Mutex

	envCfg *xconfig.EnvConf
	engCfg *engconf.EngineConf

	logDriver logs.LogDriver
	log       logs.Logger

	db          kvdb.Database
	model       *state.XModel
	contractMgr contract.Manager
	compliance  *compliance.Manager
}

func NewEngine(envCfg *xconfig.EnvConf) (*Engine, error) {
	if envCfg == nil {
		return nil, fmt.Errorf("new engine failed because env conf is nil")
	}

	engCfg, err := engconf.LoadEngineConf(envCfg.GenConfFilePath(envCfg.EngineConf))
	if err != nil {
		return nil, err
	}
	if engCfg.Admin == "" {
		return nil, fmt.Errorf("new engine failed because admin address not set")
	}

	logDriver, log, err := initLog(envCfg)
	if err != nil {
		return nil, err
	}

	db, err := kvdb.CreateKVInstance(&kvdb.KVParameter{
		DBPath:                envCfg.GenDataAbsPath(envCfg.LedgerDir),
		KVEngineType:          engCfg.KVEngineType,
		MemCacheSize:          engCfg.MemCacheSize,
		FileHandlersCacheSize: engCfg.FileHandlersCacheSize,
	})
	if err != nil {
		return nil, fmt.Errorf("new engine failed because open kv storage failed.err:%v", err)
	}

	model, err := state.NewXModel(engCfg.LedgerName, db, log)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("new engine failed because create state model failed.err:%v", err)
	}

	contractMgr, err := contract.CreateManager("default", &contract.ManagerConfig{
		Basedir:  envCfg.GenDataAbsPath(envCfg.LedgerDir),
		BCName:   engCfg.LedgerName,
		XMReader: model,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("new engine failed because create contract manager failed.err:%v", err)
	}

	complianceCtx, err := compliance.NewComplianceCtx(engCfg.LedgerName, engCfg.Admin,
		contractMgr, model, log)
	if err != nil {
		db.Close()
		return nil, err
	}
	complianceMgr, err := compliance.NewComplianceManager(complianceCtx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("new engine failed because register compliance contract failed.err:%v", err)
	}

	if envCfg.MetricSwitch {
		registerMetricsOnce.Do(metrics.RegisterMetrics)
	}

	t := &Engine{
		envCfg:      envCfg,
		engCfg:      engCfg,
		logDriver:   logDriver,
		log:         log,
		db:          db,
		model:       model,
		contractMgr: contractMgr,
		compliance:  complianceMgr,
	}
	t.log.Info("engine start", "ledger", engCfg.LedgerName, "admin", engCfg.Admin,
		"kv_engine", engCfg.KVEngineType)

	return t, nil
}

// Invoke 执行一次状态变更调用。沙盒里的写集和审计事件要么随本次调用
// 一个batch全部落库，要么在任何失败路径上全部丢弃
func (t *Engine) Invoke(method, initiator string, args map[string][]byte) (*contract.Response, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	tmr := timer.NewXTimer()
	log, _ := logs.NewLogger(t.logDriver, utils.GenLogId())

	stateSandbox, err := t.contractMgr.NewStateSandbox(&contract.SandboxConfig{
		XMReader: t.model,
	})
	if err != nil {
		return nil, err
	}

	ctx, err := t.contractMgr.NewContext(&contract.ContextConfig{
		State:        stateSandbox,
		Initiator:    initiator,
		Module:       KernModule,
		ContractName: cutils.SubModName,
	})
	if err != nil {
		return nil, err
	}
	resp, err := ctx.Invoke(method, args)
	ctx.Release()
	tmr.Mark("invoke")
	if err != nil {
		metrics.ContractInvokeFailCounter.WithLabelValues(t.engCfg.LedgerName,
			cutils.SubModName, method, errCode(err)).Inc()
		if log != nil {
			log.Warn("contract invoke failed", "method", method, "initiator", initiator,
				"err", err, "costs", tmr.Print())
		}
		return nil, err
	}

	err = t.model.CommitRWSet(stateSandbox.RWSet(), stateSandbox.Events())
	tmr.Mark("commit")
	if err != nil {
		metrics.ContractInvokeFailCounter.WithLabelValues(t.engCfg.LedgerName,
			cutils.SubModName, method, "commit").Inc()
		return nil, errors.Wrap(err, "commit invoke result")
	}

	metrics.ContractInvokeCounter.WithLabelValues(t.engCfg.LedgerName,
		cutils.SubModName, method).Inc()
	metrics.ContractInvokeHistogram.WithLabelValues(t.engCfg.LedgerName,
		cutils.SubModName, method).Observe(tmr.Elapsed().Seconds())
	if log != nil {
		log.Info("contract invoke succ", "method", method, "initiator", initiator,
			"costs", tmr.Print())
	}

	return resp, nil
}

// GetRole 查询账户角色，读已提交状态
func (t *Engine) GetRole(account string) (uint64, error) {
	return t.compliance.GetRole(account)
}

// GetBatchStatus 查询批次状态，读已提交状态
func (t *Engine) GetBatchStatus(batchId string) (uint64, error) {
	return t.compliance.GetBatchStatus(batchId)
}

// GetBatchAsset 查询批次凭证号，读已提交状态
func (t *Engine) GetBatchAsset(batchId string) (uint64, error) {
	return t.compliance.GetBatchAsset(batchId)
}

// GetVendorBatches 查询厂商批次列表，读已提交状态
func (t *Engine) GetVendorBatches(vendor string) ([]string, error) {
	return t.compliance.GetVendorBatches(vendor)
}

// QueryEvents 查询审计事件
func (t *Engine) QueryEvents(startSeq uint64, limit int) ([]*state.EventRecord, error) {
	return t.model.QueryEvents(startSeq, limit)
}

// Admin 部署时指定的管理员地址
func (t *Engine) Admin() string {
	return t.engCfg.Admin
}

// Exit 关闭引擎，释放存储句柄
func (t *Engine) Exit() {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.db.Close()
	t.log.Info("engine exit")
}

func initLog(envCfg *xconfig.EnvConf) (logs.LogDriver, logs.Logger, error) {
	lc, err := logs.LoadLogConf(envCfg.GenConfFilePath(envCfg.LogConf))
	if err != nil {
		// 日志配置缺省可用
		lc = logs.GetDefLogConf()
	}
	lc.Filepath = envCfg.GenDirAbsPath(envCfg.LogDir)

	logDriver, err := logs.OpenLog(lc)
	if err != nil {
		return nil, nil, fmt.Errorf("open log failed.err:%v", err)
	}
	log, err := logs.NewLogger(logDriver, utils.GenLogId())
	if err != nil {
		return nil, nil, fmt.Errorf("new logger failed.err:%v", err)
	}
	return logDriver, log, nil
}

func errCode(err error) string {
	switch {
	case errors.Is(err, compliance.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, compliance.ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, compliance.ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, compliance.ErrNotFound):
		return "not_found"
	case errors.Is(err, compliance.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, compliance.ErrMintingFailure):
		return "minting_failure"
	default:
		return "internal"
	}
}
