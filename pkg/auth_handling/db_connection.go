package auth_handling

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/go-sql-driver/mysql"
)

var DB *sql.DB

func DBConnect() (*sql.DB, error) {
	dbUser := os.Getenv("CIEMPOSSIBLE_DB_USER")
	dbPass := os.Getenv("CIEMPOSSIBLE_DB_PASS")
	dbName := os.Getenv("CIEMPOSSIBLE_DB_NAME")
	dbHost := os.Getenv("CIEMPOSSIBLE_DB_HOST")
	if dbUser == "" {
		dbUser = "mysql"
	}
	if dbPass == "" {
		dbPass = "mysql"
	}
	if dbName == "" {
		dbName = "ciempossible"
	}
	if dbHost == "" {
		dbHost = "localhost:3306"
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s", dbUser, dbPass, dbHost, dbName)

	DB, err := sql.Open("mysql", dsn)
	if err != nil {
		fmt.Println("Error opening database connection:", err)
		return nil, err
	}

	// Ping the database to verify the connection
	err = DB.Ping()
	if err != nil {
		fmt.Println("Error pinging database:", err)
		return nil, err
	}

	fmt.Println("Connected to MySQL database successfully!")

	return DB, err
}

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS sso_assignment (
			user_id VARCHAR(64) NOT NULL,
			user_name VARCHAR(128) NOT NULL,
			email VARCHAR(320),
			account_id VARCHAR(32) NOT NULL,
			account_name VARCHAR(128),
			permission_set_arn VARCHAR(1224) NOT NULL,
			permission_set_name VARCHAR(128),
			managed_policies TEXT,
			inline_policy TEXT,
			collected_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, account_id, permission_set_arn(255))
		)
	`)
	return err
}

func ClearDatabase(db *sql.DB) error {
	_, err := db.Exec(`DELETE FROM sso_assignment`)
	return err
}
