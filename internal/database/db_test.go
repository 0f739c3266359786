package database

import (
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/hotel-front-desk/internal/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.Config{DBUser: "desk", DBPass: "s3cret", DBHost: "db", DBPort: "3306", DBName: "hotel"})
	mc, err := mysql.ParseDSN(dsn)
	if err != nil {
		t.Fatalf("parse dsn %q: %v", dsn, err)
	}
	if mc.User != "desk" || mc.Passwd != "s3cret" || mc.Addr != "db:3306" || mc.DBName != "hotel" {
		t.Fatalf("unexpected config: %+v", mc)
	}
	if !mc.ParseTime || !mc.ClientFoundRows || mc.Loc.String() != "UTC" {
		t.Fatalf("parseTime/clientFoundRows/loc not set: %s", dsn)
	}
	if !strings.Contains(dsn, "charset=utf8mb4") {
		t.Fatalf("charset missing: %s", dsn)
	}
}
