package pipeline_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/okrdash/pkg/pipeline"
	"github.com/matzehuels/okrdash/pkg/report"
)

func ExampleRunner_Compose() {
	rep, err := report.Preset("classic")
	if err != nil {
		fmt.Println(err)
		return
	}
	res, err := pipeline.NewRunner(nil, nil).Compose(context.Background(), rep)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("cells:", res.Stats.Cells)
	fmt.Println("panels:", res.Stats.Panels)
	fmt.Println("metrics:", res.Metrics.Names())
	// Output:
	// cells: 5
	// panels: 4
	// metrics: [seat_utilisation weekly_habit sla_resolution team_adoption]
}

func ExampleRunner_Execute() {
	rep, err := report.Preset("live")
	if err != nil {
		fmt.Println(err)
		return
	}
	res, err := pipeline.NewRunner(nil, nil).Execute(context.Background(), rep, pipeline.Options{})
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, o := range res.Overlays {
		fmt.Println(o.Label(), len(o.Readings()), "readings")
	}
	// Output:
	// LIVE 4 readings
}
