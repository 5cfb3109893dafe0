package metrics

import prom "github.com/prometheus/client_golang/prometheus"

const (
	Namespace = "complianceos"

	SubsystemContract = "contract"
	SubsystemState    = "state"

	LabelLedgerName     = "ledger"
	LabelContractName   = "contract_name"
	LabelContractMethod = "contract_method"
	LabelErrorCode      = "code"
)

var (
	// 合约调用
	ContractInvokeCounter = prom.NewCounterVec(
		prom.CounterOpts{
			Namespace: Namespace,
			Subsystem: SubsystemContract,
			Name:      "invoke_total",
			Help:      "Total number of contract invoke.",
		},
		[]string{LabelLedgerName, LabelContractName, LabelContractMethod})
	ContractInvokeFailCounter = prom.NewCounterVec(
		prom.CounterOpts{
			Namespace: Namespace,
			Subsystem: SubsystemContract,
			Name:      "invoke_fail_total",
			Help:      "Total number of failed contract invoke.",
		},
		[]string{LabelLedgerName, LabelContractName, LabelContractMethod, LabelErrorCode})
	ContractInvokeHistogram = prom.NewHistogramVec(
		prom.HistogramOpts{
			Namespace: Namespace,
			Subsystem: SubsystemContract,
			Name:      "invoke_cost_seconds",
			Help:      "Histogram of contract invoke cost latency.",
			Buckets:   prom.DefBuckets,
		},
		[]string{LabelLedgerName, LabelContractName, LabelContractMethod})

	// 状态提交
	StateCommitCounter = prom.NewCounterVec(
		prom.CounterOpts{
			Namespace: Namespace,
			Subsystem: SubsystemState,
			Name:      "commit_total",
			Help:      "Total number of state commit.",
		},
		[]string{LabelLedgerName})
	StateEventCounter = prom.NewCounterVec(
		prom.CounterOpts{
			Namespace: Namespace,
			Subsystem: SubsystemState,
			Name:      "event_total",
			Help:      "Total number of audit event appended.",
		},
		[]string{LabelLedgerName, LabelContractName})
)

func RegisterMetrics() {
	prom.MustRegister(ContractInvokeCounter)
	prom.MustRegister(ContractInvokeFailCounter)
	prom.MustRegister(ContractInvokeHistogram)
	prom.MustRegister(StateCommitCounter)
	prom.MustRegister(StateEventCounter)
}
