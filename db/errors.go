package db

import (
	"regexp"
	"strings"

	"github.com/go-sql-driver/mysql"
)

var dupKeyRegexp = regexp.MustCompile(`for key '((.)+)'`)

func IsDupKeyErr(error *mysql.MySQLError) bool {
	return strings.Contains(error.Error(), "Duplicate")
}

// GetDupKey names the unique key a duplicate-entry error tripped on
func GetDupKey(error *mysql.MySQLError) string {
	match := dupKeyRegexp.FindStringSubmatch(error.Error())
	if match == nil {
		return ""
	}
	return match[1]
}
