package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/symtons/leavedesk/internal/app"
	"github.com/symtons/leavedesk/internal/balance"
	"github.com/symtons/leavedesk/internal/bootstrap"
	"github.com/symtons/leavedesk/internal/leave"
	"github.com/symtons/leavedesk/internal/shared/apperror"
	"github.com/symtons/leavedesk/internal/shared/contextutil"
	"github.com/symtons/leavedesk/internal/wizard"
)

const usage = `leavectl <command> [flags]

Commands:
  requests     list your leave requests
  types        list leave types you may request
  balance      show your PTO balance and a projection
  request      submit a leave request through the wizard
  cancel <id>  cancel one of your pending requests
  pending      list requests awaiting your approval
  approve <id> approve a pending request
  reject <id>  reject a pending request
  demo-server  run the in-memory demo backend
`

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)
	apperror.Init()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	command := os.Args[1]
	args := os.Args[2:]

	if command == "demo-server" {
		runDemoServer(args)
		return
	}

	a := app.Build(app.ConfigFromEnv(), logger)
	// One correlation id per invocation; the transport forwards it as
	// X-Request-ID on every call.
	ctx := contextutil.WithRequestID(context.Background(), uuid.NewString())

	switch command {
	case "requests":
		err = runRequests(ctx, a, args)
	case "types":
		err = runTypes(ctx, a)
	case "balance":
		err = runBalance(ctx, a, args)
	case "request":
		err = runRequest(ctx, a, args)
	case "cancel":
		err = runCancel(ctx, a, args)
	case "pending":
		err = runPending(ctx, a)
	case "approve":
		err = runApprove(ctx, a, args)
	case "reject":
		err = runReject(ctx, a, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", apperror.Message(err))
		os.Exit(1)
	}
}

func runRequests(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("requests", flag.ExitOnError)
	status := fs.String("status", "", "filter by status (Pending, Approved, Rejected, Cancelled)")
	typeName := fs.String("type", "", "filter by leave type name")
	search := fs.String("search", "", "search in type name and reason")
	sortField := fs.String("sort", "", "sort field (requestedAt, startDate, totalDays, status)")
	direction := fs.String("dir", "", "sort direction (asc, desc)")
	_ = fs.Parse(args)

	requests, err := a.Leave.Requests(ctx)
	if err != nil {
		return err
	}

	f := leave.Filter{SearchTerm: *search, TypeName: *typeName}
	if *status != "" {
		s, ok := leave.ParseStatus(*status)
		if !ok {
			return fmt.Errorf("unknown status %q", *status)
		}
		f.Status = s
	}
	visible := leave.SortRequests(
		leave.ApplyFilter(requests, f),
		leave.SortField(*sortField),
		leave.SortDirection(*direction),
	)

	printRequests(visible)
	stats := leave.ComputeStats(visible, func(r leave.LeaveRequest) bool {
		return r.Status == leave.StatusApproved
	})
	fmt.Printf("\n%d total: %d pending, %d approved, %d rejected, %d cancelled (%s approved days)\n",
		stats.Total, stats.Pending, stats.Approved, stats.Rejected, stats.Cancelled, stats.TotalDays.String())
	return nil
}

func runTypes(ctx context.Context, a *app.App) error {
	types, err := a.Leave.EligibleTypes(ctx)
	if err != nil {
		return err
	}
	if len(types) == 0 {
		fmt.Println("No leave types are available for your profile.")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPAID\tDEDUCTS PTO\tDESCRIPTION")
	for _, t := range types {
		fmt.Fprintf(w, "%s\t%s\t%v\t%v\t%s\n", t.ID, t.Name, t.IsPaidLeave, leave.DeductsPTO(t.Name), t.Description)
	}
	return w.Flush()
}

func runBalance(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("balance", flag.ExitOnError)
	pending := fs.Float64("pending", 0, "project a hypothetical pending day count")
	_ = fs.Parse(args)

	b, err := a.Leave.Balance(ctx)
	if err != nil {
		return err
	}
	p := balance.Project(b, decimal.NewFromFloat(*pending))
	if p.Status == balance.StatusNotApplicable {
		fmt.Println("PTO balance does not apply to your profile.")
		return nil
	}

	fmt.Printf("PTO %d: %s of %s days used (%d%%), %s remaining\n",
		b.Year, b.UsedPTODays.String(), b.TotalPTODays.String(), p.UsedPct, b.RemainingPTODays.String())
	if *pending > 0 {
		fmt.Printf("After a %v-day request: %s days remaining (%s)\n", *pending, p.ProjectedRemaining.String(), p.Status)
		if p.OverBudget {
			fmt.Println("Warning: this would exceed your remaining balance and needs special approval.")
		}
	} else {
		fmt.Printf("Status: %s\n", p.Status)
	}
	return nil
}

func runRequest(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("request", flag.ExitOnError)
	typeID := fs.String("type", "", "leave type id")
	start := fs.String("start", "", "start date (YYYY-MM-DD, default today)")
	end := fs.String("end", "", "end date (YYYY-MM-DD, default start)")
	halfDay := fs.Bool("half-day", false, "request a half day")
	reason := fs.String("reason", "", "free-text reason")
	_ = fs.Parse(args)

	done := make(chan struct{})
	w := wizard.New(a.Leave, a.Clock, func() { close(done) }, zap.L())
	if err := w.Load(ctx); err != nil {
		return err
	}

	if *typeID == "" {
		fmt.Println("Choose a leave type with -type; available:")
		for _, t := range w.EligibleTypes() {
			fmt.Printf("  %s  %s\n", t.ID, t.Name)
		}
		return fmt.Errorf("no leave type selected")
	}

	w.SetType(*typeID)
	if *start != "" {
		day, err := leave.ParseDay(*start)
		if err != nil {
			return err
		}
		w.SetStartDate(day)
		if *end == "" {
			w.SetEndDate(day)
		}
	}
	if *end != "" {
		day, err := leave.ParseDay(*end)
		if err != nil {
			return err
		}
		w.SetEndDate(day)
	}
	w.SetHalfDay(*halfDay)
	w.SetReason(*reason)

	// Walk the wizard forward; each failed validation surfaces inline.
	if err := w.Next(); err != nil {
		return err
	}
	if err := w.Next(); err != nil {
		return err
	}

	draft := w.Draft()
	fmt.Printf("Review: %s to %s, %s day(s)\n",
		leave.FormatDay(draft.StartDate), leave.FormatDay(draft.EndDate), w.TotalDays().String())
	for _, warning := range w.Warnings() {
		fmt.Println("Warning:", warning)
	}

	if err := w.Submit(ctx); err != nil {
		return err
	}
	fmt.Println(w.Confirmation())

	select {
	case <-done:
	case <-time.After(wizard.NavigateDelay + time.Second):
	}
	return nil
}

func runCancel(ctx context.Context, a *app.App, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: leavectl cancel <request-id>")
	}
	id := args[0]

	requests, err := a.Leave.Requests(ctx)
	if err != nil {
		return err
	}
	for _, r := range requests {
		if r.LeaveRequestID == id {
			msg, err := a.Leave.Cancel(ctx, r)
			if err != nil {
				return err
			}
			fmt.Println(msg)
			return nil
		}
	}
	return fmt.Errorf("request %s not found in your requests", id)
}

func runPending(ctx context.Context, a *app.App) error {
	// Supporting lookups degrade to empty lists without blocking the view.
	lookups := a.Directory.Lookups(ctx)

	if err := a.Approvals.Refresh(ctx); err != nil {
		return err
	}
	pending := a.Approvals.Pending()
	printRequests(pending)
	fmt.Printf("\n%d pending request(s), %d employee(s), %d department(s) available for filtering\n",
		len(pending), len(lookups.Employees), len(lookups.Departments))
	return nil
}

func runApprove(ctx context.Context, a *app.App, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: leavectl approve <request-id> [-notes ...]")
	}
	id := args[0]
	fs := flag.NewFlagSet("approve", flag.ExitOnError)
	notes := fs.String("notes", "", "optional approval notes")
	_ = fs.Parse(args[1:])

	if err := a.Approvals.Refresh(ctx); err != nil {
		return err
	}
	confirmation, err := a.Approvals.BeginApprove(id)
	if err != nil {
		return err
	}
	if !confirm(confirmation.Summary) {
		fmt.Println("Cancelled.")
		return nil
	}
	if err := a.Approvals.Approve(ctx, id, *notes); err != nil {
		return err
	}
	fmt.Println("Approved.")
	return nil
}

func runReject(ctx context.Context, a *app.App, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: leavectl reject <request-id> -reason ...")
	}
	id := args[0]
	fs := flag.NewFlagSet("reject", flag.ExitOnError)
	reason := fs.String("reason", "", "rejection reason (at least 10 characters)")
	_ = fs.Parse(args[1:])

	if err := a.Approvals.Refresh(ctx); err != nil {
		return err
	}
	confirmation, err := a.Approvals.BeginReject(id)
	if err != nil {
		return err
	}
	if !confirm(confirmation.Summary) {
		fmt.Println("Cancelled.")
		return nil
	}
	if err := a.Approvals.Reject(ctx, id, *reason); err != nil {
		return err
	}
	fmt.Println("Rejected.")
	return nil
}

func confirm(summary string) bool {
	fmt.Println(summary)
	fmt.Print("Proceed? [y/N] ")
	var answer string
	_, _ = fmt.Scanln(&answer)
	return answer == "y" || answer == "Y" || answer == "yes"
}

func printRequests(requests []leave.LeaveRequest) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMPLOYEE\tTYPE\tDATES\tDAYS\tSTATUS\tREASON")
	for _, r := range requests {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s..%s\t%s\t%s\t%s\n",
			r.LeaveRequestID, r.EmployeeName, r.LeaveType,
			leave.FormatDay(r.StartDate), leave.FormatDay(r.EndDate),
			r.TotalDays.String(), r.Status, r.Reason)
	}
	_ = w.Flush()
}

func runDemoServer(args []string) {
	fs := flag.NewFlagSet("demo-server", flag.ExitOnError)
	port := fs.String("port", "3000", "listen port")
	_ = fs.Parse(args)

	server := newDemoServer()
	bootstrap.StartHTTPServer(server.Handler(), bootstrap.ServerConfig{
		Port:         *port,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	})
}
