package utils

import (
	"fmt"

	"github.com/elC0mpa/ecs-chargeback/model"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func DrawInstanceTypeTable(report model.ClusterReport) {
	fmt.Println(RenderInstanceTypeTable(report))
}

// RenderInstanceTypeTable renders the instance type index the rates of report
// were derived from. Types with unknown specs are flagged since they carry no
// weight in either rate.
func RenderInstanceTypeTable(report model.ClusterReport) string {
	tw := table.NewWriter()
	tw.SetTitle("Instance types of %s", report.Cluster)
	tw.AppendHeader(table.Row{"Instance Type", "Cost", "Usage (hours)", "vCPUs", "Memory (MiB)"})
	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})

	for _, r := range report.InstanceTypes {
		name := r.Name
		vcpus := fmt.Sprint(r.VCPUs)
		if r.VCPUs <= 0 {
			name = text.FgHiYellow.Sprintf("%s", r.Name)
			vcpus = text.FgHiYellow.Sprint("unknown")
		}

		tw.AppendRow(table.Row{
			name,
			fmt.Sprintf("%.2f", r.Cost),
			fmt.Sprintf("%.2f", r.Usage),
			vcpus,
			r.Memory,
		})
	}

	return tw.Render()
}
