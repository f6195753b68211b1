package main

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/capacity-planner-go/internal/config"
	appHTTP "github.com/cmlabs-hris/capacity-planner-go/internal/handler/http"
	"github.com/cmlabs-hris/capacity-planner-go/internal/pkg/cron"
	"github.com/cmlabs-hris/capacity-planner-go/internal/pkg/sheet"
	planningService "github.com/cmlabs-hris/capacity-planner-go/internal/service/planning"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	sheetClient := sheet.NewClient(cfg.Sheets.FetchTimeout)

	plannerSvc := planningService.NewPlannerService(sheetClient, planningService.ServiceConfig{
		RosterURL:      cfg.Sheets.RosterURL,
		AllocationsURL: cfg.Sheets.AllocationsURL,
		CacheTTL:       cfg.Sheets.CacheTTL,
		Constants: planningService.Constants{
			AnnualBillableHours: cfg.Planning.AnnualBillableHours,
			AnnualBusinessDays:  cfg.Planning.AnnualBusinessDays,
			NoiseFloorHours:     cfg.Planning.NoiseFloorHours,
		},
		INTMatch: planningService.INTMatchMode(cfg.Planning.INTMatchMode),
	})

	// Keep the snapshot warm so dashboard requests rarely hit a cold fetch.
	if cfg.Sheets.CacheTTL > 0 {
		scheduler := cron.NewScheduler()
		scheduler.AddJob("sheet-refresh", cfg.Sheets.CacheTTL, plannerSvc.Refresh)
		scheduler.Start()
		defer scheduler.Stop()
	}

	planningHandler := appHTTP.NewPlanningHandler(plannerSvc)

	router := appHTTP.NewRouter(planningHandler, cfg.App.FrontendURL, cfg.App.Env)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
