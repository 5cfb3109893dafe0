package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

type AssignRoleCmd struct {
	BaseCmd
}

func GetAssignRoleCmd() *AssignRoleCmd {
	assignRoleCmdIns := new(AssignRoleCmd)

	var envCfgPath string
	var from string

	assignRoleCmdIns.cmd = &cobra.Command{
		Use:           "assign-role <account> <role>",
		Short:         "Assign vendor(1) or inspector(2) role to an account.",
		Example:       "compliancecore assign-role TeyyPLpp9L7QAcxHangtcHTu7HUZ6iydY 1 --from <admin>",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := openEngine(envCfgPath)
			if err != nil {
				return err
			}
			defer engine.Exit()

			resp, err := engine.Invoke("AssignRole", from, map[string][]byte{
				"account": []byte(args[0]),
				"role":    []byte(args[1]),
			})
			if err != nil {
				return err
			}
			fmt.Printf("role:%s\n", resp.Body)
			return nil
		},
	}

	assignRoleCmdIns.cmd.Flags().StringVarP(&envCfgPath, "conf", "c", "",
		"engine environment config file path")
	assignRoleCmdIns.cmd.Flags().StringVarP(&from, "from", "f", "",
		"caller account address")
	assignRoleCmdIns.cmd.MarkFlagRequired("from")

	return assignRoleCmdIns
}

type BatchOpCmd struct {
	BaseCmd
}

// newBatchOpCmd 批次状态变更命令的公共骨架
func newBatchOpCmd(use, short, method string) *BatchOpCmd {
	batchOpCmdIns := new(BatchOpCmd)

	var envCfgPath string
	var from string

	batchOpCmdIns.cmd = &cobra.Command{
		Use:           use + " <batch_id>",
		Short:         short,
		Example:       fmt.Sprintf("compliancecore %s B-100 --from <caller>", use),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := openEngine(envCfgPath)
			if err != nil {
				return err
			}
			defer engine.Exit()

			resp, err := engine.Invoke(method, from, map[string][]byte{
				"batch_id": []byte(args[0]),
			})
			if err != nil {
				return err
			}
			fmt.Printf("state:%s\n", resp.Body)
			return nil
		},
	}

	batchOpCmdIns.cmd.Flags().StringVarP(&envCfgPath, "conf", "c", "",
		"engine environment config file path")
	batchOpCmdIns.cmd.Flags().StringVarP(&from, "from", "f", "",
		"caller account address")
	batchOpCmdIns.cmd.MarkFlagRequired("from")

	return batchOpCmdIns
}

func GetCreateBatchCmd() *BatchOpCmd {
	return newBatchOpCmd("create-batch",
		"Register a new batch, requires vendor role.", "CreateBatch")
}

func GetApproveBatchCmd() *BatchOpCmd {
	return newBatchOpCmd("approve-batch",
		"Approve a created batch, requires inspector role.", "ApproveBatch")
}

func GetCertifyBatchCmd() *BatchOpCmd {
	return newBatchOpCmd("certify-batch",
		"Certify an approved batch and mint its certificate, requires administrator or inspector.", "CertifyBatch")
}
