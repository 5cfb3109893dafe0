package compliance

import (
	"testing"

	"github.com/xuperchain/compliancecore/kernel/compliance/utils"
	"github.com/xuperchain/compliancecore/kernel/contract"
	_ "github.com/xuperchain/compliancecore/kernel/contract/manager"
	"github.com/xuperchain/compliancecore/kernel/contract/sandbox"
	"github.com/xuperchain/compliancecore/kernel/ledger"
)

const (
	testAdmin     = "dpzuVdosQrF2kmzumhVeFQZa1aYcdgFpN"
	testVendor    = "TeyyPLpp9L7QAcxHangtcHTu7HUZ6iydY"
	testInspector = "SmJG3rH2ZzYQ9ojxhbRCPwFiE9y6pD1Co"
	testNobody    = "iYjtLcW6SVCiousAb5DFKWtWroahhEj4u"
)

// testEnv 用真实的manager和沙盒跑合约，成功的调用把写集落到内存状态，
// 失败的调用整个沙盒丢弃，和引擎的提交语义一致
type testEnv struct {
	t      *testing.T
	model  *sandbox.MemXModel
	mgr    contract.Manager
	events []*contract.Event
}

func newTestEnv(t *testing.T) *testEnv {
	model := sandbox.NewMemXModel()
	mgr, err := contract.CreateManager("default", &contract.ManagerConfig{
		BCName:   "compliance",
		XMReader: model,
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx, err := NewComplianceCtx("compliance", testAdmin, mgr, model, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = NewComplianceManager(ctx); err != nil {
		t.Fatal(err)
	}

	return &testEnv{
		t:     t,
		model: model,
		mgr:   mgr,
	}
}

func (env *testEnv) invoke(initiator, method string, args map[string][]byte) (*contract.Response, error) {
	sbx, err := env.mgr.NewStateSandbox(&contract.SandboxConfig{XMReader: env.model})
	if err != nil {
		env.t.Fatal(err)
	}
	ctx, err := env.mgr.NewContext(&contract.ContextConfig{
		State:        sbx,
		Initiator:    initiator,
		Module:       "xkernel",
		ContractName: utils.SubModName,
	})
	if err != nil {
		env.t.Fatal(err)
	}
	defer ctx.Release()

	resp, err := ctx.Invoke(method, args)
	if err != nil {
		// 失败路径：沙盒整体丢弃，不追加事件
		return nil, err
	}

	for _, pd := range sbx.RWSet().WSet {
		err = env.model.Put(pd.GetBucket(), pd.GetKey(), &ledger.VersionedData{
			PureData: pd,
		})
		if err != nil {
			env.t.Fatal(err)
		}
	}
	env.events = append(env.events, sbx.Events()...)
	return resp, nil
}

func (env *testEnv) mustInvoke(initiator, method string, args map[string][]byte) *contract.Response {
	resp, err := env.invoke(initiator, method, args)
	if err != nil {
		env.t.Fatalf("%s by %s failed: %v", method, initiator, err)
	}
	return resp
}

func (env *testEnv) assignRole(account string, role string) {
	env.mustInvoke(testAdmin, "AssignRole", map[string][]byte{
		"account": []byte(account),
		"role":    []byte(role),
	})
}

func batchArgs(batchId string) map[string][]byte {
	return map[string][]byte{"batch_id": []byte(batchId)}
}
