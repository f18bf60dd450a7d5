package utils

import (
	"fmt"
	"sort"

	"github.com/elC0mpa/ecs-chargeback/model"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// ClusterHeader returns the one line summary printed above a cluster table
func ClusterHeader(report model.ClusterReport) string {
	return fmt.Sprintf("CLUSTER: %s (cost/vcpu:%.2f mem/vcpu:%.0f)", report.Cluster, report.Rate.HourlyVCPUCost, report.Rate.MemoryPerVCPU)
}

func DrawChargebackTable(report model.ClusterReport) {
	fmt.Printf("\n%s\n\n", text.FgHiWhite.Sprint(ClusterHeader(report)))
	fmt.Println(RenderChargebackTable(report))
}

// RenderChargebackTable renders the services of report, most expensive first
func RenderChargebackTable(report model.ClusterReport) string {
	rowHeader := table.Row{
		"Service",
		"CPU-R",
		"CPU-U",
		"MEM-R",
		"MEM-U",
		"MEM/VCPU",
		"Cost (hourly)",
		"Waste (hourly)",
	}

	tw := table.Table{}

	tw.AppendHeader(rowHeader)
	var rows []table.Row

	for _, cost := range orderServiceCosts(report.Services) {
		rows = append(rows, populateRow(cost))
	}

	tw.AppendRows(rows)
	tw.AppendFooter(populateTotalRow(report))
	tw.SetStyle(table.StyleRounded)

	columns := []table.ColumnConfig{{Number: 1, VAlignHeader: text.VAlignMiddle}}
	for number := 2; number <= len(rowHeader); number++ {
		columns = append(columns, table.ColumnConfig{Number: number, Align: text.AlignRight, AlignFooter: text.AlignRight})
	}
	tw.SetColumnConfigs(columns)

	return tw.Render()
}

func orderServiceCosts(costs []model.ServiceCost) []model.ServiceCost {
	sorted := make([]model.ServiceCost, len(costs))
	copy(sorted, costs)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].HourlyCost > sorted[j].HourlyCost
	})

	return sorted
}

func populateRow(cost model.ServiceCost) table.Row {
	row := make(table.Row, 8)

	row[0] = text.FgGreen.Sprintf("%s", cost.Service)
	row[1] = cost.CPUReservation
	row[2] = fmt.Sprintf("%.2f", cost.CPUUtilization)
	row[3] = cost.MemoryReservation
	row[4] = fmt.Sprintf("%.2f", cost.MemoryUtilization)
	row[5] = fmt.Sprintf("%.0f", cost.MemoryPerVCPU)
	row[6] = text.FgGreen.Sprintf("%.4f", cost.HourlyCost)
	row[7] = text.FgGreen.Sprintf("%.4f", cost.HourlyWaste)

	// more than half of the reservation is unused
	if cost.HourlyWaste > cost.HourlyCost/2 {
		row[0] = text.FgRed.Sprintf("%s", cost.Service)
		row[7] = text.FgRed.Sprintf("%.4f", cost.HourlyWaste)
	}

	return row
}

func populateTotalRow(report model.ClusterReport) table.Row {
	row := make(table.Row, 8)
	row[0] = "Total"
	row[6] = fmt.Sprintf("%.4f", report.TotalHourlyCost())
	row[7] = fmt.Sprintf("%.4f", report.TotalHourlyWaste())
	return row
}
