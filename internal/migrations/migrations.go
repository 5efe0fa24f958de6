package migrations

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"optimanager/m/internal/database"
)

// Run creates the database schema required by the shop backend.
func Run(db *sqlx.DB) error {
	d := database.DialectOf(db)
	schema, ok := schemas[d]
	if !ok {
		return fmt.Errorf("no schema for dialect %q", d)
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

var schemas = map[database.Dialect][]string{
	database.SQLite: {
		`CREATE TABLE IF NOT EXISTS users (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL,
            email TEXT NOT NULL UNIQUE,
            password TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'employee'
        );`,
		`CREATE TABLE IF NOT EXISTS products (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL,
            brand TEXT,
            type TEXT NOT NULL,
            price NUMERIC NOT NULL,
            purchase_rate NUMERIC,
            quantity INTEGER NOT NULL DEFAULT 0,
            barcode TEXT UNIQUE,
            frame_size TEXT,
            material TEXT,
            color TEXT
        );`,
		`CREATE TABLE IF NOT EXISTS customers (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL,
            phone TEXT,
            email TEXT,
            address TEXT,
            od_sph TEXT, od_cyl TEXT, od_axis TEXT, od_add TEXT,
            os_sph TEXT, os_cyl TEXT, os_axis TEXT, os_add TEXT,
            pd TEXT,
            notes TEXT,
            date_added TEXT NOT NULL,
            allow_whatsapp INTEGER NOT NULL DEFAULT 0
        );`,
		`CREATE TABLE IF NOT EXISTS sales (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            customer_id INTEGER NOT NULL,
            sale_date TEXT NOT NULL,
            total_amount NUMERIC NOT NULL,
            status TEXT NOT NULL DEFAULT 'Processing',
            FOREIGN KEY(customer_id) REFERENCES customers(id)
        );`,
		`CREATE TABLE IF NOT EXISTS sale_items (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            sale_id INTEGER NOT NULL,
            product_id INTEGER NOT NULL,
            quantity INTEGER NOT NULL,
            price_at_sale NUMERIC NOT NULL,
            FOREIGN KEY(sale_id) REFERENCES sales(id),
            FOREIGN KEY(product_id) REFERENCES products(id)
        );`,
	},
	database.MySQL: {
		`CREATE TABLE IF NOT EXISTS users (
            id INT AUTO_INCREMENT PRIMARY KEY,
            name VARCHAR(255) NOT NULL,
            email VARCHAR(255) NOT NULL UNIQUE,
            password VARCHAR(255) NOT NULL,
            role ENUM('admin', 'employee') NOT NULL DEFAULT 'employee'
        );`,
		`CREATE TABLE IF NOT EXISTS products (
            id INT AUTO_INCREMENT PRIMARY KEY,
            name VARCHAR(255) NOT NULL,
            brand VARCHAR(255),
            type VARCHAR(64) NOT NULL,
            price DECIMAL(10,2) NOT NULL,
            purchase_rate DECIMAL(10,2),
            quantity INT NOT NULL DEFAULT 0,
            barcode VARCHAR(128) UNIQUE,
            frame_size VARCHAR(64),
            material VARCHAR(128),
            color VARCHAR(64)
        );`,
		`CREATE TABLE IF NOT EXISTS customers (
            id INT AUTO_INCREMENT PRIMARY KEY,
            name VARCHAR(255) NOT NULL,
            phone VARCHAR(32),
            email VARCHAR(255),
            address TEXT,
            od_sph VARCHAR(16), od_cyl VARCHAR(16), od_axis VARCHAR(16), od_add VARCHAR(16),
            os_sph VARCHAR(16), os_cyl VARCHAR(16), os_axis VARCHAR(16), os_add VARCHAR(16),
            pd VARCHAR(16),
            notes TEXT,
            date_added DATE NOT NULL,
            allow_whatsapp BOOLEAN NOT NULL DEFAULT FALSE
        );`,
		`CREATE TABLE IF NOT EXISTS sales (
            id INT AUTO_INCREMENT PRIMARY KEY,
            customer_id INT NOT NULL,
            sale_date DATE NOT NULL,
            total_amount DECIMAL(10,2) NOT NULL,
            status VARCHAR(32) NOT NULL DEFAULT 'Processing',
            FOREIGN KEY(customer_id) REFERENCES customers(id)
        );`,
		`CREATE TABLE IF NOT EXISTS sale_items (
            id INT AUTO_INCREMENT PRIMARY KEY,
            sale_id INT NOT NULL,
            product_id INT NOT NULL,
            quantity INT NOT NULL,
            price_at_sale DECIMAL(10,2) NOT NULL,
            FOREIGN KEY(sale_id) REFERENCES sales(id),
            FOREIGN KEY(product_id) REFERENCES products(id)
        );`,
	},
	database.Postgres: {
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'employee'
		);`,
		`CREATE TABLE IF NOT EXISTS products (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            brand TEXT,
            type TEXT NOT NULL,
            price NUMERIC(10,2) NOT NULL,
            purchase_rate NUMERIC(10,2),
            quantity INTEGER NOT NULL DEFAULT 0,
            barcode TEXT UNIQUE,
            frame_size TEXT,
            material TEXT,
            color TEXT
        );`,
		`CREATE TABLE IF NOT EXISTS customers (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            phone TEXT,
            email TEXT,
            address TEXT,
            od_sph TEXT, od_cyl TEXT, od_axis TEXT, od_add TEXT,
            os_sph TEXT, os_cyl TEXT, os_axis TEXT, os_add TEXT,
            pd TEXT,
            notes TEXT,
            date_added DATE NOT NULL,
            allow_whatsapp BOOLEAN NOT NULL DEFAULT FALSE
        );`,
		`CREATE TABLE IF NOT EXISTS sales (
            id SERIAL PRIMARY KEY,
            customer_id INTEGER NOT NULL REFERENCES customers(id),
            sale_date DATE NOT NULL,
            total_amount NUMERIC(10,2) NOT NULL,
            status TEXT NOT NULL DEFAULT 'Processing'
        );`,
		`CREATE TABLE IF NOT EXISTS sale_items (
			id SERIAL PRIMARY KEY,
			sale_id INTEGER NOT NULL REFERENCES sales(id),
			product_id INTEGER NOT NULL REFERENCES products(id),
			quantity INTEGER NOT NULL,
			price_at_sale NUMERIC(10,2) NOT NULL
		);`,
	},
}
