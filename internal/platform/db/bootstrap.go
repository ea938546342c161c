package db

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

//go:embed schema.sql
var schemaSQL string

// SeedProduct is a catalog row inserted into an empty store.
type SeedProduct struct {
	Name  string
	Price decimal.Decimal
	Stock int
}

// SeedCustomer is a customer row inserted into an empty store.
type SeedCustomer struct {
	Name string
}

// DefaultProducts is inserted when the products table is empty.
var DefaultProducts = []SeedProduct{
	{Name: "Indomie Goreng", Price: decimal.NewFromInt(3500), Stock: 50},
	{Name: "Gula Pasir 1kg", Price: decimal.NewFromInt(14000), Stock: 20},
	{Name: "Kopi Kapal Api", Price: decimal.NewFromInt(2000), Stock: 30},
}

// DefaultCustomers is inserted when the customers table is empty.
var DefaultCustomers = []SeedCustomer{
	{Name: "Salvano"},
	{Name: "Panji"},
}

// Bootstrap creates the schema if needed and seeds sample data into empty tables.
func Bootstrap(ctx context.Context, db TxBeginner) error {
	return WithTx(ctx, db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, schemaSQL); err != nil {
			return fmt.Errorf("platform/db: apply schema: %w", err)
		}
		if err := seedProducts(ctx, tx, DefaultProducts); err != nil {
			return err
		}
		return seedCustomers(ctx, tx, DefaultCustomers)
	})
}

func seedProducts(ctx context.Context, tx DBTX, products []SeedProduct) error {
	empty, err := tableEmpty(ctx, tx, "products")
	if err != nil || !empty {
		return err
	}
	for _, p := range products {
		if _, err := tx.Exec(ctx, `INSERT INTO products (name, price, stock) VALUES ($1, $2, $3)`, p.Name, p.Price, p.Stock); err != nil {
			return fmt.Errorf("platform/db: seed product %q: %w", p.Name, err)
		}
	}
	return nil
}

func seedCustomers(ctx context.Context, tx DBTX, customers []SeedCustomer) error {
	empty, err := tableEmpty(ctx, tx, "customers")
	if err != nil || !empty {
		return err
	}
	for _, c := range customers {
		if _, err := tx.Exec(ctx, `INSERT INTO customers (name) VALUES ($1)`, c.Name); err != nil {
			return fmt.Errorf("platform/db: seed customer %q: %w", c.Name, err)
		}
	}
	return nil
}

func tableEmpty(ctx context.Context, tx DBTX, table string) (bool, error) {
	var exists bool
	// table is one of the fixed names above, never user input.
	if err := tx.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM "+table+")").Scan(&exists); err != nil {
		return false, fmt.Errorf("platform/db: count %s: %w", table, err)
	}
	return !exists, nil
}
