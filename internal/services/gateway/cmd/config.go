package main

import (
	"os"
	"strconv"
)

type Config struct {
	Port string

	SoilTestURL  string
	SoilTestPath string
	TrendURL     string
	TrendPath    string

	TimeoutMs int

	CBFails  int
	CBOpenMs int

	ShutdownGraceS int
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
		Port: getenv("PORT", "5009"),

		SoilTestURL:  getenv("SOILTEST_URL", "http://soiltest-service:5000"),
		SoilTestPath: getenv("SOILTEST_PATH", "/api/soil-tests"),
		TrendURL:     getenv("TREND_URL", "http://trend-service:5008"),
		TrendPath:    getenv("TREND_PATH", "/trends/nutrients"),

		TimeoutMs: getenvInt("TIMEOUT_MS", 3000),

		CBFails:  getenvInt("CB_FAILS", 3),
		CBOpenMs: getenvInt("CB_OPEN_MS", 10000),

		ShutdownGraceS: getenvInt("SHUTDOWN_GRACE_S", 5),
	}
}
