package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dmitrijs2005/gostconsole/internal/client/models"
)

const listPageSize = 50

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		Render()
}

func id(v uint) string { return strconv.FormatUint(uint64(v), 10) }

// Nodes lists nodes, or shows one when an id is given.
func (a *App) Nodes(ctx context.Context, args []string) error {
	if len(args) > 0 {
		nodeID, err := a.idArg(args, "nodes [id]")
		if err != nil {
			return err
		}
		n, err := a.nodes.Get(ctx, nodeID)
		if err != nil {
			return a.report(ctx, err)
		}
		fmt.Fprintf(a.out, "#%d %s\n  host: %s:%d\n  status: %s\n", n.ID, n.Name, n.Host, n.APIPort, n.Status)
		if n.Description != "" {
			fmt.Fprintf(a.out, "  %s\n", n.Description)
		}
		return nil
	}

	page, err := a.nodes.List(ctx, models.ListParams{Page: 1, PageSize: listPageSize})
	if err != nil {
		return a.report(ctx, err)
	}

	rows := make([][]string, 0, len(page.List))
	for _, n := range page.List {
		rows = append(rows, []string{id(n.ID), n.Name, n.Host, strconv.Itoa(n.APIPort), n.Status})
	}
	fmt.Fprintln(a.out, renderTable([]string{"ID", "NAME", "HOST", "API PORT", "STATUS"}, rows))
	fmt.Fprintf(a.out, "%d node(s)\n", page.Total)
	return nil
}

// NodeConfig prints the GOST configuration generated for a node.
func (a *App) NodeConfig(ctx context.Context, args []string) error {
	nodeID, err := a.idArg(args, "node-config <id>")
	if err != nil {
		return err
	}
	raw, err := a.nodes.Config(ctx, nodeID)
	if err != nil {
		return a.report(ctx, err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		fmt.Fprintln(a.out, string(raw))
		return nil
	}
	fmt.Fprintln(a.out, buf.String())
	return nil
}

func (a *App) NodeDelete(ctx context.Context, args []string) error {
	nodeID, err := a.idArg(args, "node-delete <id>")
	if err != nil {
		return err
	}
	if err := a.nodes.Delete(ctx, nodeID); err != nil {
		return a.report(ctx, err)
	}
	fmt.Fprintf(a.out, "Node %d deleted\n", nodeID)
	return nil
}

// Tunnels lists tunnels, or shows one when an id is given.
func (a *App) Tunnels(ctx context.Context, args []string) error {
	if len(args) > 0 {
		tunnelID, err := a.idArg(args, "tunnels [id]")
		if err != nil {
			return err
		}
		t, err := a.tunnels.Get(ctx, tunnelID)
		if err != nil {
			return a.report(ctx, err)
		}
		fmt.Fprintf(a.out, "#%d %s\n  %s :%d  node %d -> node %d\n  status: %s\n",
			t.ID, t.Name, t.Protocol, t.ListenPort, t.EntryNodeID, t.ExitNodeID, t.Status)
		return nil
	}

	page, err := a.tunnels.List(ctx, models.ListParams{Page: 1, PageSize: listPageSize})
	if err != nil {
		return a.report(ctx, err)
	}

	rows := make([][]string, 0, len(page.List))
	for _, t := range page.List {
		rows = append(rows, []string{
			id(t.ID), t.Name, t.Protocol, strconv.Itoa(t.ListenPort),
			id(t.EntryNodeID) + " -> " + id(t.ExitNodeID), t.Status,
		})
	}
	fmt.Fprintln(a.out, renderTable([]string{"ID", "NAME", "PROTOCOL", "PORT", "NODES", "STATUS"}, rows))
	fmt.Fprintf(a.out, "%d tunnel(s)\n", page.Total)
	return nil
}

func (a *App) TunnelStart(ctx context.Context, args []string) error {
	tunnelID, err := a.idArg(args, "tunnel-start <id>")
	if err != nil {
		return err
	}
	if err := a.tunnels.Start(ctx, tunnelID); err != nil {
		return a.report(ctx, err)
	}
	fmt.Fprintf(a.out, "Tunnel %d started\n", tunnelID)
	return nil
}

func (a *App) TunnelStop(ctx context.Context, args []string) error {
	tunnelID, err := a.idArg(args, "tunnel-stop <id>")
	if err != nil {
		return err
	}
	if err := a.tunnels.Stop(ctx, tunnelID); err != nil {
		return a.report(ctx, err)
	}
	fmt.Fprintf(a.out, "Tunnel %d stopped\n", tunnelID)
	return nil
}

func (a *App) TunnelDelete(ctx context.Context, args []string) error {
	tunnelID, err := a.idArg(args, "tunnel-delete <id>")
	if err != nil {
		return err
	}
	if err := a.tunnels.Delete(ctx, tunnelID); err != nil {
		return a.report(ctx, err)
	}
	fmt.Fprintf(a.out, "Tunnel %d deleted\n", tunnelID)
	return nil
}
