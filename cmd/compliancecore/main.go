package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/xuperchain/compliancecore/cmd/compliancecore/cmd"
)

func main() {
	rootCmd, err := NewComplianceCommand()
	if err != nil {
		log.Fatalf("start command failed.err:%v", err)
	}

	if err = rootCmd.Execute(); err != nil {
		log.Fatalf("run command failed.err:%v", err)
	}
}

func NewComplianceCommand() (*cobra.Command, error) {
	rootCmd := &cobra.Command{
		Use:           "compliancecore <command> [arguments]",
		Short:         "Compliancecore is a supply chain compliance ledger.",
		Long:          "Compliancecore tracks product batches through create/approve/certify with role gated transitions and an append-only audit trail.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example:       "compliancecore create-batch B-100 --from <vendor> --conf ./conf/env.yaml",
	}

	// 状态变更
	rootCmd.AddCommand(cmd.GetAssignRoleCmd().GetCmd())
	rootCmd.AddCommand(cmd.GetCreateBatchCmd().GetCmd())
	rootCmd.AddCommand(cmd.GetApproveBatchCmd().GetCmd())
	rootCmd.AddCommand(cmd.GetCertifyBatchCmd().GetCmd())
	// 只读查询
	rootCmd.AddCommand(cmd.GetRoleQueryCmd().GetCmd())
	rootCmd.AddCommand(cmd.GetStatusQueryCmd().GetCmd())
	rootCmd.AddCommand(cmd.GetAssetQueryCmd().GetCmd())
	rootCmd.AddCommand(cmd.GetVendorBatchesQueryCmd().GetCmd())
	rootCmd.AddCommand(cmd.GetEventsCmd().GetCmd())
	// 版本信息
	rootCmd.AddCommand(cmd.GetVersionCmd().GetCmd())

	return rootCmd, nil
}
