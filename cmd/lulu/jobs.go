package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/enthus-golang/lulu"
)

func jobsCommand() *cli.Command {
	return &cli.Command{
		Name:  "jobs",
		Usage: "Manage print jobs",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List print jobs",
				Flags: []cli.Flag{
					rawFlag(),
					&cli.IntFlag{Name: "page", Usage: "Page number"},
					&cli.IntFlag{Name: "page-size", Usage: "Number of jobs per page"},
					&cli.StringFlag{Name: "status", Usage: "Only jobs in `STATUS`"},
					&cli.StringFlag{Name: "search", Usage: "Free text search"},
					&cli.StringFlag{Name: "order-id", Usage: "Only jobs of `ORDER`"},
					&cli.StringFlag{Name: "ordering", Usage: "Sort by `FIELD`, prefix with - for descending"},
					&cli.StringFlag{Name: "created-after", Usage: "Only jobs created after `DATE`"},
					&cli.StringFlag{Name: "created-before", Usage: "Only jobs created before `DATE`"},
					&cli.StringFlag{Name: "modified-after", Usage: "Only jobs modified after `DATE`"},
					&cli.StringFlag{Name: "modified-before", Usage: "Only jobs modified before `DATE`"},
					&cli.BoolFlag{Name: "exclude-line-items", Usage: "Leave line items out of the response"},
				},
				Action: runJobsList,
			},
			{
				Name:      "get",
				Usage:     "Show a print job",
				ArgsUsage: "ID",
				Flags:     []cli.Flag{rawFlag()},
				Action:    runJobsGet,
			},
			{
				Name:      "create",
				Usage:     "Create a print job from a simplified JSON document",
				ArgsUsage: "FILE",
				Action:    runJobsCreate,
			},
			{
				Name:      "cancel",
				Usage:     "Cancel a print job before it goes to production",
				ArgsUsage: "ID",
				Action:    runJobsCancel,
			},
			{
				Name:      "status",
				Usage:     "Show the status of a print job",
				ArgsUsage: "ID",
				Action:    runJobsStatus,
			},
			{
				Name:      "costs",
				Usage:     "Show the costs of a print job",
				ArgsUsage: "ID",
				Action:    runJobsCosts,
			},
			{
				Name:  "stats",
				Usage: "Show print job statistics",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "start", Usage: "First `DATE` to include"},
					&cli.StringFlag{Name: "end", Usage: "Last `DATE` to include"},
					&cli.StringFlag{Name: "step", Usage: "Group by DAY, WEEK or MONTH"},
				},
				Action: runJobsStats,
			},
		},
	}
}

func rawFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "raw",
		Usage: "Print the job as returned by the API instead of the simplified form",
	}
}

func listOptions(c *cli.Context) (*lulu.ListPrintJobsOptions, error) {
	opts := &lulu.ListPrintJobsOptions{
		Page:             c.Int("page"),
		PageSize:         c.Int("page-size"),
		Status:           lulu.Status(c.String("status")),
		Search:           c.String("search"),
		OrderID:          c.String("order-id"),
		Ordering:         c.String("ordering"),
		ExcludeLineItems: c.Bool("exclude-line-items"),
	}

	dates := []struct {
		flag string
		dst  *time.Time
	}{
		{"created-after", &opts.CreatedAfter},
		{"created-before", &opts.CreatedBefore},
		{"modified-after", &opts.ModifiedAfter},
		{"modified-before", &opts.ModifiedBefore},
	}
	for _, d := range dates {
		t, err := parseDate(c.String(d.flag))
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", d.flag, err)
		}
		*d.dst = t
	}

	return opts, nil
}

func runJobsList(c *cli.Context) error {
	e, err := newEnv(c)
	if err != nil {
		return err
	}

	opts, err := listOptions(c)
	if err != nil {
		return err
	}

	if c.Bool("raw") {
		list, err := e.client.ListRawPrintJobs(c.Context, opts)
		if err != nil {
			return err
		}
		return e.print(list)
	}

	list, err := e.client.ListPrintJobs(c.Context, opts)
	if err != nil {
		return err
	}
	return e.print(list)
}

func runJobsGet(c *cli.Context) error {
	id, err := jobIDArg(c)
	if err != nil {
		return err
	}

	e, err := newEnv(c)
	if err != nil {
		return err
	}

	if c.Bool("raw") {
		job, err := e.client.GetRawPrintJob(c.Context, id)
		if err != nil {
			return err
		}
		return e.print(job)
	}

	job, err := e.client.GetPrintJob(c.Context, id)
	if err != nil {
		return err
	}
	return e.print(job)
}

func runJobsCreate(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected the path of a print job document")
	}

	f, err := os.Open(c.Args().First())
	if err != nil {
		return fmt.Errorf("opening print job document: %w", err)
	}
	defer f.Close()

	in, err := lulu.DecodeCreateJobInput(f)
	if err != nil {
		return err
	}

	e, err := newEnv(c)
	if err != nil {
		return err
	}

	job, err := e.client.CreatePrintJob(c.Context, in)
	if err != nil {
		return err
	}
	return e.print(job)
}

func runJobsCancel(c *cli.Context) error {
	id, err := jobIDArg(c)
	if err != nil {
		return err
	}

	e, err := newEnv(c)
	if err != nil {
		return err
	}

	status, err := e.client.CancelPrintJob(c.Context, id)
	if err != nil {
		return err
	}
	return e.print(status)
}

func runJobsStatus(c *cli.Context) error {
	id, err := jobIDArg(c)
	if err != nil {
		return err
	}

	e, err := newEnv(c)
	if err != nil {
		return err
	}

	status, err := e.client.GetPrintJobStatus(c.Context, id)
	if err != nil {
		return err
	}
	return e.print(status)
}

func runJobsCosts(c *cli.Context) error {
	id, err := jobIDArg(c)
	if err != nil {
		return err
	}

	e, err := newEnv(c)
	if err != nil {
		return err
	}

	costs, err := e.client.GetPrintJobCosts(c.Context, id)
	if err != nil {
		return err
	}
	return e.print(costs)
}

func runJobsStats(c *cli.Context) error {
	start, err := parseDate(c.String("start"))
	if err != nil {
		return fmt.Errorf("--start: %w", err)
	}
	end, err := parseDate(c.String("end"))
	if err != nil {
		return fmt.Errorf("--end: %w", err)
	}

	e, err := newEnv(c)
	if err != nil {
		return err
	}

	stats, err := e.client.GetPrintJobStatistics(c.Context, &lulu.StatisticsOptions{
		StartDate: start,
		EndDate:   end,
		TimeStep:  c.String("step"),
	})
	if err != nil {
		return err
	}
	return e.print(stats)
}
