package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
)

const bannerText = `
      _       _     _                  _
    (_) ___ | |__ | |_ _ __ __ _  ___| | __
    | |/ _ \| '_ \| __| '__/ _' |/ __| |/ /
    | | (_) | |_) | |_| | | (_| | (__|   <
   _/ |\___/|_.__/ \__|_|  \__,_|\___|_|\_\
  |__/
`

func main() {
	list := flag.Bool("list", false, "List tracked jobs")
	page := flag.Int("page", 1, "Page to list")
	dateFrom := flag.String("from", "", "Filter: jobs created on or after this date (YYYY-MM-DD)")
	dateTo := flag.String("to", "", "Filter: jobs created on or before this date (YYYY-MM-DD)")
	importPath := flag.String("import", "", "Import jobs from a CSV file")
	exportPath := flag.String("export", "", "Export all jobs to a CSV file")
	deleteIDs := flag.String("delete", "", "Delete jobs by id (comma-separated)")
	clear := flag.Bool("clear", false, "Delete ALL jobs and metadata")
	server := flag.String("server", "", "Server base URL (overrides config)")
	silence := flag.Bool("silence", false, "Suppress the banner")
	flag.Parse()

	if !*silence {
		fmt.Println(pterm.LightCyan(bannerText))
	}

	cfg, err := loadConfig()
	if err != nil {
		pterm.Error.Printf("bad config file: %v\n", err)
		os.Exit(1)
	}
	if *server != "" {
		cfg.Server.URL = strings.TrimRight(*server, "/")
	}

	client := newAPIClient(cfg.Server.URL, cfg.timeout())
	ctx, cancel := context.WithTimeout(context.Background(), cfg.timeout())
	defer cancel()

	switch {
	case *importPath != "":
		runImport(ctx, client, *importPath)
	case *exportPath != "":
		runExport(ctx, client, *exportPath)
	case *deleteIDs != "":
		runDelete(ctx, client, *deleteIDs)
	case *clear:
		runClear(ctx, client)
	case *list:
		runList(ctx, client, *page, *dateFrom, *dateTo, cfg.Display.MaxRows)
	default:
		flag.Usage()
	}
}

func runList(ctx context.Context, client *apiClient, page int, dateFrom, dateTo string, maxRows int) {
	result, err := client.listJobs(ctx, page, dateFrom, dateTo)
	if err != nil {
		pterm.Error.Printf("list failed: %v\n", err)
		os.Exit(1)
	}

	if len(result.Items) == 0 {
		pterm.Info.Println("no jobs found")
		return
	}

	data := pterm.TableData{{"ID", "Created", "Company", "Position", "Status"}}
	for i, it := range result.Items {
		if i >= maxRows {
			break
		}
		data = append(data, []string{
			strconv.FormatInt(it.ID, 10),
			formatCreateDate(it.CreateDate),
			it.Company,
			it.JobPosition,
			it.Status,
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		fmt.Println(data)
	}
	pterm.Info.Printf("page %d of %d | %s jobs total\n",
		result.Page, result.TotalPages, humanize.Comma(int64(result.Total)))
}

func runImport(ctx context.Context, client *apiClient, path string) {
	summary, err := client.importCSV(ctx, path)
	if err != nil {
		pterm.Error.Printf("import failed: %v\n", err)
		os.Exit(1)
	}

	pterm.Success.Printf("imported %s records\n", humanize.Comma(int64(summary.Imported)))
	for _, s := range summary.Skipped {
		pterm.Warning.Printf("skipped line %d: %s\n", s.Line, s.Reason)
	}
}

func runExport(ctx context.Context, client *apiClient, path string) {
	n, err := client.exportCSV(ctx, path)
	if err != nil {
		pterm.Error.Printf("export failed: %v\n", err)
		os.Exit(1)
	}

	pterm.Success.Printf("wrote %s to %s\n", humanize.Bytes(uint64(n)), path)
}

func runDelete(ctx context.Context, client *apiClient, raw string) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			pterm.Error.Printf("bad id %q\n", part)
			os.Exit(1)
		}
		ids = append(ids, id)
	}

	deleted, err := client.deleteJobs(ctx, ids)
	if err != nil {
		pterm.Error.Printf("delete failed: %v\n", err)
		os.Exit(1)
	}
	pterm.Success.Printf("deleted %d jobs\n", deleted)
}

func runClear(ctx context.Context, client *apiClient) {
	pterm.Warning.Println("this deletes every job and all metadata")
	ok, err := pterm.DefaultInteractiveConfirm.Show("Continue?")
	if err != nil || !ok {
		pterm.Info.Println("aborted")
		return
	}

	if err := client.clearAll(ctx); err != nil {
		pterm.Error.Printf("clear failed: %v\n", err)
		os.Exit(1)
	}
	pterm.Success.Println("all data cleared")
}

func formatCreateDate(raw string) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return humanize.Time(t)
}
