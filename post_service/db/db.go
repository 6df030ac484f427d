package db

import (
	"database/sql"
	"embed"
	"fmt"
	"log"

	_ "github.com/lib/pq"

	"github.com/ShounakM04/Blog-Microservices/post_service/models"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func InitDBConnections(config models.Config) (*sql.DB, *sql.DB, error) {
	// Primary connection (for writes)
	primaryPath := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName)

	primaryDB, err := sql.Open("postgres", primaryPath)
	if err != nil {
		log.Println("Failed to connect to primary DB:", err.Error())
		return nil, nil, err
	}
	if err := applyMigration(primaryDB, config.DBName); err != nil {
		return nil, nil, err
	}

	// Replica connection (for reads); without a configured replica the
	// primary serves reads too.
	replicaDB := primaryDB
	if config.DBReplicaHost != "" {
		replicaPath := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			config.DBReplicaHost, config.DBReplicaPort, config.DBReplicaUser,
			config.DBReplicaPassword, config.DBReplicaName)

		replicaDB, err = sql.Open("postgres", replicaPath)
		if err != nil {
			log.Println("Failed to connect to replica DB:", err.Error())
			return nil, nil, err
		}
		replicaDB.SetMaxOpenConns(25)
		replicaDB.SetMaxIdleConns(10)
	}

	primaryDB.SetMaxOpenConns(15)
	primaryDB.SetMaxIdleConns(5)

	return primaryDB, replicaDB, nil
}

func applyMigration(db *sql.DB, dbname string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Println("Using Same Connection for Migrations failed:", err.Error())
		return err
	}
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", source, dbname, driver)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	// Migrations are appiled in transactions in postgres
	// So in case of fail, it will run rollback
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Println("Migration of Database failed: ", err.Error())
		return err
	}

	log.Println("Migrations applied successfully!")
	return nil
}
