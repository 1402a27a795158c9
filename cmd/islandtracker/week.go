package main

import (
	"fmt"
	"strings"
	"time"

	"islandtracker/internal/types"

	"github.com/spf13/cobra"
)

// dayIndex maps a day name to its position in a Week.
func dayIndex(name string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), strings.TrimSpace(name)) {
			return d, nil
		}
	}
	return time.Sunday, &types.ValidationError{Fields: []string{"day"}, Msg: fmt.Sprintf("unknown day %q", name)}
}

func newWeekCmd(current func() *app) *cobra.Command {
	cmd := &cobra.Command{Use: "week", Short: "Show and edit this week's price sheet"}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print this week's price sheet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := current()
			return render(a.out, map[string]any{
				"key":  a.service.CurrentWeekKey(),
				"days": a.service.GetCurrentWeek(cmd.Context()),
			}, outputOpts{})
		},
	})

	var day string
	var am, pm, buy int
	set := &cobra.Command{
		Use:   "set",
		Short: "Record prices for one day of this week",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := current()
			idx := a.service.Today()
			if day != "" {
				var err error
				if idx, err = dayIndex(day); err != nil {
					return err
				}
			}
			w := a.service.GetCurrentWeek(cmd.Context())
			d := &w[idx]
			flags := cmd.Flags()
			if flags.Changed("am") {
				d.MorningPrice = &am
			}
			if flags.Changed("pm") {
				d.EveningPrice = &pm
			}
			if flags.Changed("buy") {
				d.BuyPrice = &buy
			}
			if err := a.service.SaveCurrentWeek(cmd.Context(), w); err != nil {
				return err
			}
			return render(a.out, *d, outputOpts{})
		},
	}
	set.Flags().StringVar(&day, "day", "", "day name, defaults to today")
	set.Flags().IntVar(&am, "am", 0, "morning sell price")
	set.Flags().IntVar(&pm, "pm", 0, "evening sell price")
	set.Flags().IntVar(&buy, "buy", 0, "buy price")
	cmd.AddCommand(set)
	return cmd
}

func newPricesCmd(current func() *app) *cobra.Command {
	cmd := &cobra.Command{Use: "prices", Short: "Publish prices to friends"}

	var day string
	push := &cobra.Command{
		Use:   "push",
		Short: "Send one day's prices, today's by default",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := current()
			var d *types.Day
			if day != "" {
				idx, err := dayIndex(day)
				if err != nil {
					return err
				}
				w := a.service.GetCurrentWeek(cmd.Context())
				d = &w[idx]
			}
			return a.service.UpdateTurnipPrices(cmd.Context(), d)
		},
	}
	push.Flags().StringVar(&day, "day", "", "day name, defaults to today")
	cmd.AddCommand(push)
	return cmd
}
