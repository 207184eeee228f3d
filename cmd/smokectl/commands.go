package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"smokefree/internal/device/coordinator"
	"smokefree/internal/device/model"
)

var errUsage = errors.New("invalid command")

type cli struct {
	coord *coordinator.Coordinator
	out   io.Writer
	now   func() time.Time
}

func (c *cli) today() string {
	now := time.Now
	if c.now != nil {
		now = c.now
	}
	return now().Format(model.DateLayout)
}

func (c *cli) dispatch(ctx context.Context, args []string) error {
	switch args[0] {
	case "settings":
		if len(args) < 2 {
			return errUsage
		}
		switch args[1] {
		case "show":
			return c.showSettings(ctx)
		case "set":
			return c.setSettings(ctx, args[2:])
		}
		return errUsage
	case "day":
		if len(args) < 2 || args[1] != "setup" {
			return errUsage
		}
		return c.setupDay(ctx, optArg(args[2:], c.today()))
	case "smoke":
		return c.smoke(ctx)
	case "today":
		return c.showLog(ctx, c.today())
	case "alarms":
		return c.showAlarms(ctx, optArg(args[1:], c.today()))
	case "stats":
		return c.showStats(ctx, args[1:])
	case "promo":
		if len(args) < 2 {
			return errUsage
		}
		return c.promo(ctx, strings.Join(args[1:], " "))
	case "status":
		return c.status(ctx)
	}
	return errUsage
}

func optArg(args []string, fallback string) string {
	if len(args) == 0 {
		return fallback
	}
	return args[0]
}

// hydrate loads the cached settings and waits for the store refresh.
func (c *cli) hydrate(ctx context.Context) *model.Settings {
	c.coord.GetSettings(ctx)
	c.coord.Wait()
	return c.coord.Snapshot().Settings
}

func (c *cli) showSettings(ctx context.Context) error {
	s := c.hydrate(ctx)
	if s == nil {
		fmt.Fprintln(c.out, "no settings yet, run: smokectl settings set -wake 07:00 -sleep 23:00 -goal 10")
		return nil
	}
	fmt.Fprintf(c.out, "wake:       %s\n", s.WakeTime)
	fmt.Fprintf(c.out, "sleep:      %s\n", s.SleepTime)
	fmt.Fprintf(c.out, "daily goal: %d\n", s.DailyCigaretteGoal)
	fmt.Fprintf(c.out, "language:   %s\n", s.Language)
	fmt.Fprintf(c.out, "background: %s\n", s.BackgroundColor)
	fmt.Fprintf(c.out, "premium:    %t\n", c.coord.IsPremium())
	return nil
}

func (c *cli) setSettings(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("settings set", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	wake := fs.String("wake", "", "wake time HH:MM")
	sleep := fs.String("sleep", "", "sleep time HH:MM")
	goal := fs.Int("goal", 0, "daily cigarette goal")
	lang := fs.String("lang", "", "language (de|en)")
	bg := fs.String("bg", "", "background color (gray|black)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	var patch model.SettingsPatch
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "wake":
			patch.WakeTime = wake
		case "sleep":
			patch.SleepTime = sleep
		case "goal":
			patch.DailyCigaretteGoal = goal
		case "lang":
			patch.Language = lang
		case "bg":
			patch.BackgroundColor = bg
		}
	})

	c.hydrate(ctx)
	s, err := c.coord.UpdateSettings(ctx, patch)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "saved: %s-%s, goal %d\n", s.WakeTime, s.SleepTime, s.DailyCigaretteGoal)
	return nil
}

func (c *cli) setupDay(ctx context.Context, date string) error {
	c.hydrate(ctx)
	day, alarms, err := c.coord.SetupDay(ctx, date)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s: goal %d, %d smoked\n", day.Date, day.CigarettesGoal, day.CigarettesSmoked)
	fmt.Fprintf(c.out, "reminders: %s\n", strings.Join(alarms.AlarmTimes, " "))
	return nil
}

func (c *cli) smoke(ctx context.Context) error {
	day, err := c.coord.IncrementCigarettes(ctx)
	if err != nil {
		return err
	}
	if day == nil {
		fmt.Fprintln(c.out, "no log for today, run: smokectl day setup")
		return nil
	}
	fmt.Fprintf(c.out, "%d of %d today\n", day.CigarettesSmoked, day.CigarettesGoal)
	return nil
}

func (c *cli) showLog(ctx context.Context, date string) error {
	c.coord.GetLogForDate(ctx, date)
	c.coord.Wait()
	day := c.coord.Snapshot().Log
	if day == nil {
		fmt.Fprintf(c.out, "%s: no log\n", date)
		return nil
	}
	fmt.Fprintf(c.out, "%s: %d of %d\n", day.Date, day.CigarettesSmoked, day.CigarettesGoal)
	return nil
}

func (c *cli) showAlarms(ctx context.Context, date string) error {
	c.coord.GetAlarms(ctx, date)
	c.coord.Wait()
	a := c.coord.Snapshot().Alarms
	if a == nil || len(a.AlarmTimes) == 0 {
		fmt.Fprintf(c.out, "%s: no reminders\n", date)
		return nil
	}
	fmt.Fprintf(c.out, "%s: %s\n", a.Date, strings.Join(a.AlarmTimes, " "))
	return nil
}

func (c *cli) showStats(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	days := fs.Int("days", 0, "window in days")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	c.coord.GetStatistics(ctx, *days)
	c.coord.Wait()
	st := c.coord.Snapshot().Statistics
	if st == nil {
		fmt.Fprintln(c.out, "no statistics")
		return nil
	}
	fmt.Fprintf(c.out, "total:   %d\n", st.TotalSmoked)
	fmt.Fprintf(c.out, "average: %.1f per day\n", st.DisplayAverage())
	if st.BestDay != nil {
		fmt.Fprintf(c.out, "best:    %s (%d)\n", st.BestDay.Date, st.BestDay.Smoked)
	}
	fmt.Fprintf(c.out, "trend:   %s\n", st.Trend)
	for _, d := range st.WeeklyData {
		fmt.Fprintf(c.out, "  %s %3d / %d\n", d.Date, d.Smoked, d.Goal)
	}
	return nil
}

func (c *cli) promo(ctx context.Context, code string) error {
	c.hydrate(ctx)
	res := c.coord.ApplyPromoCode(ctx, code)
	fmt.Fprintln(c.out, res.Message)
	if res.PremiumEnabled && res.PremiumExpiresAt != nil {
		fmt.Fprintf(c.out, "premium until %s\n", res.PremiumExpiresAt.Format(model.DateLayout))
	}
	return nil
}

func (c *cli) status(ctx context.Context) error {
	c.hydrate(ctx)
	snap := c.coord.Snapshot()
	fmt.Fprintf(c.out, "device:  %s\n", c.coord.DeviceID())
	fmt.Fprintf(c.out, "premium: %t\n", c.coord.IsPremium())
	fmt.Fprintf(c.out, "offline: %t\n", snap.IsOffline())
	if snap.LastSyncError != nil {
		fmt.Fprintf(c.out, "last sync error: %v\n", snap.LastSyncError)
	}
	return nil
}
