package utils

import (
	"fmt"
	"os"
	"sort"

	"github.com/elC0mpa/ecs-chargeback/model"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// DrawClusterSummaryTable prints one row per cluster, plus a total row when
// more than one cluster was processed
func DrawClusterSummaryTable(accountID string, reports []model.ClusterReport) {
	fmt.Printf("\n%s\n", text.FgHiWhite.Sprint(" ECS CHARGEBACK SUMMARY"))
	if accountID != "" {
		fmt.Printf(" Account ID: %s\n", text.FgBlue.Sprint(accountID))
	}
	fmt.Println(text.FgHiBlue.Sprint(" ------------------------------------------------"))

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	appendClusterSummary(tw, reports)
	tw.Render()
}

func RenderClusterSummaryTable(reports []model.ClusterReport) string {
	tw := table.NewWriter()
	appendClusterSummary(tw, reports)
	return tw.Render()
}

func appendClusterSummary(tw table.Writer, reports []model.ClusterReport) {
	tw.SetTitle("Cost Summary by Cluster")
	tw.AppendHeader(table.Row{"Cluster", "Services", "Cost/vCPU", "Cost (hourly)", "Waste (hourly)"})
	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})

	sorted := make([]model.ClusterReport, len(reports))
	copy(sorted, reports)
	SortClusterReports(sorted)

	var totalCost, totalWaste float64
	for _, r := range sorted {
		cost := r.TotalHourlyCost()
		waste := r.TotalHourlyWaste()
		totalCost += cost
		totalWaste += waste

		wasteStr := text.FgHiGreen.Sprintf("%.4f", waste)
		if waste > cost/2 {
			wasteStr = text.FgHiRed.Sprintf("%.4f", waste)
		}

		tw.AppendRow(table.Row{
			r.Cluster,
			len(r.Services),
			fmt.Sprintf("%.2f", r.Rate.HourlyVCPUCost),
			fmt.Sprintf("%.4f", cost),
			wasteStr,
		})
	}

	if len(sorted) > 1 {
		tw.AppendSeparator()
		tw.AppendRow(table.Row{
			text.FgHiWhite.Sprint("TOTAL"),
			"",
			"",
			fmt.Sprintf("%.4f", totalCost),
			fmt.Sprintf("%.4f", totalWaste),
		})
	}
}

// SortClusterReports orders reports by hourly cost, most expensive first
func SortClusterReports(reports []model.ClusterReport) {
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].TotalHourlyCost() > reports[j].TotalHourlyCost()
	})
}
