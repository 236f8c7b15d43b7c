package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/comitanigiacomo/kanso-productivity-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-productivity-engine/internal/core/productivity"
	"github.com/comitanigiacomo/kanso-productivity-engine/internal/core/services"
)

type Context struct {
	In  io.Reader
	Out io.Writer
}

type RecordSource struct {
	Input string `short:"i" help:"JSON array of daily records; - reads stdin." default:"-"`
	Today string `help:"Evaluation day (YYYY-MM-DD). Defaults to the local date."`
	TZ    string `name:"tz" help:"IANA timezone used to derive today." env:"TIMEZONE" default:"UTC"`
}

func (s RecordSource) load(ctx *Context) ([]*domain.DailyRecord, time.Time, error) {
	var today time.Time
	if s.Today != "" {
		d, err := domain.ParseDay(s.Today)
		if err != nil {
			return nil, today, err
		}
		today = d
	} else {
		loc, err := time.LoadLocation(s.TZ)
		if err != nil {
			return nil, today, fmt.Errorf("invalid timezone %q: %w", s.TZ, err)
		}
		today = domain.NewClock(loc).Today()
	}

	r := ctx.In
	if s.Input != "-" {
		f, err := os.Open(s.Input)
		if err != nil {
			return nil, today, err
		}
		defer f.Close()
		r = f
	}

	var records []*domain.DailyRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, today, fmt.Errorf("failed to decode records: %w", err)
	}
	return records, today, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type AggregateCmd struct {
	RecordSource `embed:""`

	Granularity string `short:"g" help:"daily, weekly or monthly." enum:"daily,weekly,monthly" default:"weekly"`
}

func (c *AggregateCmd) Run(ctx *Context) error {
	g, err := domain.ParseGranularity(c.Granularity)
	if err != nil {
		return err
	}

	records, today, err := c.load(ctx)
	if err != nil {
		return err
	}

	return writeJSON(ctx.Out, productivity.Aggregate(records, g, today))
}

type StreakCmd struct {
	RecordSource `embed:""`

	Total     *int `help:"Live total tasks for today, overriding the stored record."`
	Completed *int `help:"Live completed tasks for today."`
}

func (c *StreakCmd) Run(ctx *Context) error {
	records, today, err := c.load(ctx)
	if err != nil {
		return err
	}

	var override *domain.DayOverride
	if c.Total != nil || c.Completed != nil {
		override = &domain.DayOverride{}
		if c.Total != nil {
			override.TotalTasks = *c.Total
		}
		if c.Completed != nil {
			override.CompletedTasks = *c.Completed
		}
	}

	return writeJSON(ctx.Out, productivity.Streaks(records, today, override))
}

type TokenCmd struct {
	User     string        `arg:"" help:"User id to put in the token subject."`
	Secret   string        `help:"HMAC secret." env:"JWT_SECRET" required:""`
	Issuer   string        `help:"Token issuer." env:"JWT_ISSUER" default:"kanso"`
	Duration time.Duration `help:"Token lifetime." default:"24h"`
}

func (c *TokenCmd) Run(ctx *Context) error {
	token, err := services.NewTokenService(c.Secret, c.Issuer, c.Duration).GenerateToken(c.User)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.Out, token)
	return err
}
