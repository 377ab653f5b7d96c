package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/retailworks/medallion/internal/logging"
)

var createStatements = map[string]string{
	"customers": `CREATE TABLE IF NOT EXISTS customers (
		id integer,
		first_name varchar(50),
		last_name varchar(50),
		gender varchar(10),
		date_of_birth date,
		age integer,
		email varchar(100),
		phone varchar(20),
		post_address varchar(255),
		membership varchar(50)
	)`,
	"products": `CREATE TABLE IF NOT EXISTS products (
		id integer,
		product_name varchar(100),
		price numeric(10,2) NOT NULL,
		category varchar(50),
		brand varchar(50),
		product_description text
	)`,
	"orders": `CREATE TABLE IF NOT EXISTS orders (
		id integer,
		customer_id integer,
		customer_first_name varchar(50),
		customer_last_name varchar(50),
		customer_gender varchar(10),
		customer_age integer,
		customer_email varchar(100),
		customer_phone varchar(20),
		order_date date,
		product_id integer,
		product_name varchar(100),
		quantity integer,
		unit_price numeric(10,2),
		total numeric(10,2),
		category varchar(50),
		brand varchar(50),
		product_description text,
		return_status boolean DEFAULT FALSE
	)`,
}

// TableNames lists the raw tables in load order.
var TableNames = []string{"customers", "products", "orders"}

// CreateSchema creates the three raw tables if they do not exist.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, name := range TableNames {
		if _, err := pool.Exec(ctx, createStatements[name]); err != nil {
			return fmt.Errorf("failed to create table %s: %w", name, err)
		}
		logging.Debug().Str("table", name).Msg("Table created")
	}
	return nil
}

// DropSchema drops the three raw tables.
func DropSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, name := range TableNames {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+name); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", name, err)
		}
		logging.Debug().Str("table", name).Msg("Table dropped")
	}
	return nil
}
