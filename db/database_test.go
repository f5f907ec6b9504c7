package db

import (
	"testing"

	"github.com/TemaXo00/musium-web-application/config"

	"github.com/stretchr/testify/assert"
)

func testConfig() *config.Config {
	return &config.Config{
		DBUser:     "root",
		DBPassword: "pw",
		DBHost:     "127.0.0.1",
		DBPort:     "3306",
		DBName:     "musium",
	}
}

func TestMySQLDSN(t *testing.T) {
	dsn := mysqlDSN(testConfig())

	assert.Equal(t, "root:pw@tcp(127.0.0.1:3306)/musium?parseTime=true&clientFoundRows=true", dsn)
}

// Status updates are idempotent only when RowsAffected counts matched
// rows: without clientFoundRows, re-approving an already-approved entity
// changes nothing, reports zero rows and would read as not-found.
func TestDSNsKeepFoundRowsSemantics(t *testing.T) {
	cfg := testConfig()

	assert.Contains(t, mysqlDSN(cfg), "clientFoundRows=true")
	assert.Contains(t, gormDSN(cfg), "clientFoundRows=true")
	assert.Contains(t, gormDSN(cfg), "parseTime=True")
}
