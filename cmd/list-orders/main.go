// Lists ledger orders by status. Usage: list-orders [status] [limit]
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/5anyam/vyadhiharfoods-sub000/internal/config"
	"github.com/5anyam/vyadhiharfoods-sub000/internal/domain"
	"github.com/5anyam/vyadhiharfoods-sub000/internal/repository/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	status := domain.OrderStatusPending
	if len(os.Args) > 1 {
		status = domain.OrderStatus(os.Args[1])
		if !status.IsValid() {
			log.Fatalf("Invalid status %q (want pending, processing, cancelled or failed)", os.Args[1])
		}
	}
	limit := 50
	if len(os.Args) > 2 {
		if n, err := strconv.Atoi(os.Args[2]); err == nil {
			limit = n
		}
	}

	repos := postgres.NewRepositories(db, logger)
	records, err := repos.OrderRecord.ListByStatus(context.Background(), status, limit, 0)
	if err != nil {
		log.Fatalf("Failed to list orders: %v", err)
	}

	fmt.Printf("%-12s %-12s %-10s %-10s %-20s %s\n",
		"ORDER", "STATUS", "METHOD", "TOTAL", "CUSTOMER", "CREATED")
	for _, r := range records {
		fmt.Printf("%-12d %-12s %-10s %-10s %-20s %s\n",
			r.RemoteOrderID, r.Status, r.PaymentMethod,
			r.Total.StringFixed(2), r.CustomerName,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Printf("\n%d order(s)\n", len(records))
}
