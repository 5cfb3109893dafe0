package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xuperchain/compliancecore/kernel/engines/complianceos"
)

type QueryCmd struct {
	BaseCmd
}

// newQueryCmd 只读查询命令的公共骨架，查询走已提交状态
func newQueryCmd(use, short, example string, argName string,
	query func(engine *complianceos.Engine, arg string) (string, error)) *QueryCmd {
	queryCmdIns := new(QueryCmd)

	var envCfgPath string

	queryCmdIns.cmd = &cobra.Command{
		Use:           use + " <" + argName + ">",
		Short:         short,
		Example:       example,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := openEngine(envCfgPath)
			if err != nil {
				return err
			}
			defer engine.Exit()

			out, err := query(engine, args[0])
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}

	queryCmdIns.cmd.Flags().StringVarP(&envCfgPath, "conf", "c", "",
		"engine environment config file path")

	return queryCmdIns
}

func GetRoleQueryCmd() *QueryCmd {
	return newQueryCmd("role", "Query the role of an account, 99 means none.",
		"compliancecore role TeyyPLpp9L7QAcxHangtcHTu7HUZ6iydY", "account",
		func(engine *complianceos.Engine, account string) (string, error) {
			role, err := engine.GetRole(account)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("role:%d", role), nil
		})
}

func GetStatusQueryCmd() *QueryCmd {
	return newQueryCmd("status", "Query the state of a batch, 99 means not found.",
		"compliancecore status B-100", "batch_id",
		func(engine *complianceos.Engine, batchId string) (string, error) {
			status, err := engine.GetBatchStatus(batchId)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("state:%d", status), nil
		})
}

func GetAssetQueryCmd() *QueryCmd {
	return newQueryCmd("asset", "Query the certificate id of a batch, 0 means not certified.",
		"compliancecore asset B-100", "batch_id",
		func(engine *complianceos.Engine, batchId string) (string, error) {
			assetId, err := engine.GetBatchAsset(batchId)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("asset:%d", assetId), nil
		})
}

func GetVendorBatchesQueryCmd() *QueryCmd {
	return newQueryCmd("vendor-batches", "Query the batches created by a vendor in creation order.",
		"compliancecore vendor-batches TeyyPLpp9L7QAcxHangtcHTu7HUZ6iydY", "vendor",
		func(engine *complianceos.Engine, vendor string) (string, error) {
			batches, err := engine.GetVendorBatches(vendor)
			if err != nil {
				return "", err
			}
			return strings.Join(batches, "\n"), nil
		})
}

type EventsCmd struct {
	BaseCmd
}

func GetEventsCmd() *EventsCmd {
	eventsCmdIns := new(EventsCmd)

	var envCfgPath string
	var startSeq uint64
	var limit int

	eventsCmdIns.cmd = &cobra.Command{
		Use:           "events",
		Short:         "List audit events in append order.",
		Example:       "compliancecore events --start 1 --limit 100",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := openEngine(envCfgPath)
			if err != nil {
				return err
			}
			defer engine.Exit()

			records, err := engine.QueryEvents(startSeq, limit)
			if err != nil {
				return err
			}
			for _, record := range records {
				fmt.Printf("%d\t%s\t%s\n", record.Seq, record.Name, record.Body)
			}
			return nil
		},
	}

	eventsCmdIns.cmd.Flags().StringVarP(&envCfgPath, "conf", "c", "",
		"engine environment config file path")
	eventsCmdIns.cmd.Flags().Uint64VarP(&startSeq, "start", "s", 0,
		"first event sequence number to list")
	eventsCmdIns.cmd.Flags().IntVarP(&limit, "limit", "l", 0,
		"max event count, 0 means unlimited")

	return eventsCmdIns
}
