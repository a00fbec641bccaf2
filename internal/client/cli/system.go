package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/gostconsole/internal/client/models"
)

// Logs prints one page of the operation log, page 1 by default.
func (a *App) Logs(ctx context.Context, args []string) error {
	p := models.LogListParams{}
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			fmt.Fprintln(a.out, "Usage: logs [page]")
			return errUsage
		}
		p.Page = n
	}

	page, err := a.logs.List(ctx, p)
	if err != nil {
		return a.report(ctx, err)
	}

	rows := make([][]string, 0, len(page.List))
	for _, l := range page.List {
		rows = append(rows, []string{
			l.CreatedAt.Local().Format(time.DateTime), l.Username, l.Action, l.ResourceType, l.IP,
		})
	}
	fmt.Fprintln(a.out, renderTable([]string{"TIME", "USER", "ACTION", "RESOURCE", "IP"}, rows))
	fmt.Fprintf(a.out, "%d log entries\n", page.Total)
	return nil
}

func (a *App) Stats(ctx context.Context) error {
	st, err := a.stats.Dashboard(ctx)
	if err != nil {
		return a.report(ctx, err)
	}

	fmt.Fprintf(a.out, "nodes:       %d online / %d total\n", st.OnlineNodes, st.TotalNodes)
	fmt.Fprintf(a.out, "tunnels:     %d running / %d total\n", st.RunningTunnels, st.TotalTunnels)
	fmt.Fprintf(a.out, "rules:       %d\n", st.TotalRules)
	fmt.Fprintf(a.out, "connections: %d\n", st.CurrentConns)
	fmt.Fprintf(a.out, "traffic:     %s in / %s out\n",
		humanize.IBytes(uint64(max(st.InputBytes, 0))), humanize.IBytes(uint64(max(st.OutputBytes, 0))))
	return nil
}

// Config prints the system configuration. The SMTP password is never shown.
func (a *App) Config(ctx context.Context) error {
	cfg, err := a.system.Config(ctx)
	if err != nil {
		return a.report(ctx, err)
	}

	fmt.Fprintf(a.out, "site title:  %s\n", cfg.Config.SiteTitle)
	fmt.Fprintf(a.out, "logo url:    %s\n", cfg.Config.LogoURL)
	fmt.Fprintf(a.out, "copyright:   %s\n", cfg.Config.Copyright)
	fmt.Fprintf(a.out, "panel url:   %s\n", cfg.Panel.PanelURL)
	fmt.Fprintf(a.out, "smtp:        %s:%d as %s (from %s)\n", cfg.Email.Host, cfg.Email.Port, cfg.Email.Username, cfg.Email.FromEmail)
	fmt.Fprintf(a.out, "log:         level %s, kept %d day(s)\n", cfg.Log.Level, cfg.Log.RetentionDays)
	fmt.Fprintf(a.out, "backup:      auto %t, keep %d\n", cfg.Backup.AutoBackup, cfg.Backup.RetentionCount)
	return nil
}

// TestEmail sends a test message to the given address using the SMTP
// settings currently saved on the panel.
func (a *App) TestEmail(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: test-email <to>")
		return errUsage
	}

	cfg, err := a.system.Config(ctx)
	if err != nil {
		return a.report(ctx, err)
	}
	mail := cfg.Email
	mail.ToEmail = args[0]

	if err := a.system.SendTestEmail(ctx, mail); err != nil {
		return a.report(ctx, err)
	}
	fmt.Fprintf(a.out, "Test e-mail sent to %s\n", args[0])
	return nil
}

func (a *App) Backup(ctx context.Context) error {
	if err := a.system.Backup(ctx); err != nil {
		return a.report(ctx, err)
	}
	fmt.Fprintln(a.out, "Backup created")
	return nil
}
