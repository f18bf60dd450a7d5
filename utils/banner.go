package utils

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/common-nighthawk/go-figure"
	"github.com/jedib0t/go-pretty/v6/text"
)

var loadingSpinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond)

func DrawBanner() {
	banner := figure.NewFigure("ECS Chargeback", "", true)
	fmt.Println(text.FgHiCyan.Sprint(banner.String()))
}

func StartSpinner() {
	loadingSpinner.Suffix = " Computing service costs..."
	loadingSpinner.Start()
}

func StopSpinner() {
	loadingSpinner.Stop()
}
