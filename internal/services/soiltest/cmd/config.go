package main

import (
	"os"
	"strconv"
)

type Config struct {
	Port   string
	DBPath string

	ReadHeaderTimeoutS int
	ShutdownGraceS     int
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func loadConfig() Config {
	return Config{
		Port:   getenv("PORT", "5000"),
		DBPath: getenv("DB_PATH", "soil_tests.db"),

		ReadHeaderTimeoutS: getenvInt("READ_HEADER_TIMEOUT_S", 5),
		ShutdownGraceS:     getenvInt("SHUTDOWN_GRACE_S", 5),
	}
}
