package utils

import (
	"fmt"
	"sort"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/elC0mpa/ecs-chargeback/model"
	"github.com/jedib0t/go-pretty/v6/text"
)

const (
	ColorRank1 = "#d73027"
	ColorRank2 = "#f46d43"
	ColorRank3 = "#fee08b"
	ColorRank4 = "#abdda4"
	ColorRank5 = "#66c2a5"
	ColorRank6 = "#1a9850"
)

// colorRest is used for every bar ranked below the palette
const colorRest = "#4575b4"

var defaultStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("#F4D060"))

// DrawServiceCostChart draws the hourly cost of every service of report as a
// bar chart, costliest bars in red.
func DrawServiceCostChart(report model.ClusterReport) {
	fmt.Printf("\n%s\n", text.FgHiWhite.Sprint(" ECS CHARGEBACK: HOURLY COST BY SERVICE"))
	fmt.Printf(" Cluster: %s\n", text.FgBlue.Sprint(report.Cluster))
	fmt.Println(text.FgHiBlue.Sprint(" ------------------------------------------------"))

	if len(report.Services) == 0 {
		fmt.Println(" no services")
		return
	}

	fmt.Println()
	fmt.Println(RenderServiceCostChart(report))
}

func RenderServiceCostChart(report model.ClusterReport) string {
	bc := barchart.New(130, 20)

	costs := make([]float64, len(report.Services))
	for i, s := range report.Services {
		costs[i] = s.HourlyCost
	}
	indexedColors := assignRankedColors(costs)

	for idx, s := range report.Services {
		data := barchart.BarData{
			Label: getBarLabel(s),
			Values: []barchart.BarValue{
				{
					Value: s.HourlyCost,
					Style: lipgloss.NewStyle().Foreground(lipgloss.Color(indexedColors[idx])),
				},
			},
		}

		bc.Push(data)
	}

	bc.Draw()
	return lipgloss.JoinHorizontal(lipgloss.Top,
		defaultStyle.Render(bc.View()),
	)
}

func getBarLabel(s model.ServiceCost) string {
	return fmt.Sprintf("%s: %.2f", s.Service, s.HourlyCost)
}

func assignRankedColors(values []float64) []string {
	palette := []string{ColorRank1, ColorRank2, ColorRank3, ColorRank4, ColorRank5, ColorRank6}

	type valueWithIndex struct {
		index int
		value float64
	}

	valuesToSort := make([]valueWithIndex, len(values))
	for i, value := range values {
		valuesToSort[i] = valueWithIndex{
			index: i,
			value: value,
		}
	}

	sort.SliceStable(valuesToSort, func(i, j int) bool {
		return valuesToSort[i].value > valuesToSort[j].value
	})

	resultColors := make([]string, len(values))
	for rank, sorted := range valuesToSort {
		resultColors[sorted.index] = colorRest
		if rank < len(palette) {
			resultColors[sorted.index] = palette[rank]
		}
	}

	return resultColors
}
