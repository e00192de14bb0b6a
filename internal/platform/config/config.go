package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// PostingPolicy decides what happens when the ledger posting of a business
// operation fails.
type PostingPolicy string

const (
	// PostingStrict rolls the business operation back together with its posting.
	PostingStrict PostingPolicy = "strict"
	// PostingBestEffort keeps the business record, logs the gap and leaves it for backfill.
	PostingBestEffort PostingPolicy = "best_effort"
)

// SystemAccounts holds the codes of the well-known accounts the ledger posts to.
type SystemAccounts struct {
	Cash                   string
	Bank                   string
	Receivables            string
	PrepaymentBase         string // per-customer accounts are "{base}-{id:%06d}"
	SalesRevenue           string
	VATOutput              string
	SalariesExpense        string
	SalariesPayable        string
	PAYEPayable            string
	PensionPayable         string
	NHISPayable            string
	NHFPayable             string
	OtherDeductionsPayable string
}

// Codes returns every configured code keyed by its config name. The prepayment
// base is a prefix, not an account, and is left out.
func (s SystemAccounts) Codes() map[string]string {
	return map[string]string{
		"LEDGER_ACCOUNT_CASH":                     s.Cash,
		"LEDGER_ACCOUNT_BANK":                     s.Bank,
		"LEDGER_ACCOUNT_RECEIVABLES":              s.Receivables,
		"LEDGER_ACCOUNT_SALES_REVENUE":            s.SalesRevenue,
		"LEDGER_ACCOUNT_VAT_OUTPUT":               s.VATOutput,
		"LEDGER_ACCOUNT_SALARIES_EXPENSE":         s.SalariesExpense,
		"LEDGER_ACCOUNT_SALARIES_PAYABLE":         s.SalariesPayable,
		"LEDGER_ACCOUNT_PAYE_PAYABLE":             s.PAYEPayable,
		"LEDGER_ACCOUNT_PENSION_PAYABLE":          s.PensionPayable,
		"LEDGER_ACCOUNT_NHIS_PAYABLE":             s.NHISPayable,
		"LEDGER_ACCOUNT_NHF_PAYABLE":              s.NHFPayable,
		"LEDGER_ACCOUNT_OTHER_DEDUCTIONS_PAYABLE": s.OtherDeductionsPayable,
	}
}

// Config holds application configuration.
type Config struct {
	DatabaseURL        string
	Port               string
	IsProduction       bool
	EnableDBCheck      bool
	MigrationsPath     string
	JWTSecret          string
	JWTIssuer          string
	RedisAddr          string // empty: locks are process-local
	LockTTL            time.Duration
	RateLimit          string // ulule formatted rate, e.g. "100-M"
	CORSAllowedOrigins []string

	PostingPolicy      PostingPolicy
	SeedSystemAccounts bool
	RecomputeWorkers   int
	SystemAccounts     SystemAccounts
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	setDefaults()

	// Actual environment variables override .env values and defaults.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	lockTTLStr := viper.GetString("LOCK_TTL")
	lockTTL, err := time.ParseDuration(lockTTLStr)
	if err != nil || lockTTL <= 0 {
		lockTTL = 30 * time.Second
		log.Printf("Warning: Invalid value for LOCK_TTL ('%s'). Defaulting to %s.\n", lockTTLStr, lockTTL.String())
	}
	cfg.LockTTL = lockTTL

	cfg.PostingPolicy = PostingPolicy(strings.ToLower(viper.GetString("LEDGER_POSTING_POLICY")))
	switch cfg.PostingPolicy {
	case PostingStrict, PostingBestEffort:
	default:
		return nil, fmt.Errorf("LEDGER_POSTING_POLICY must be %q or %q, got %q", PostingStrict, PostingBestEffort, cfg.PostingPolicy)
	}

	cfg.RecomputeWorkers = viper.GetInt("LEDGER_RECOMPUTE_WORKERS")
	if cfg.RecomputeWorkers < 1 {
		cfg.RecomputeWorkers = 1
		log.Println("Warning: LEDGER_RECOMPUTE_WORKERS below 1. Defaulting to 1.")
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.SeedSystemAccounts = viper.GetBool("LEDGER_SEED_SYSTEM_ACCOUNTS")

	cfg.SystemAccounts = SystemAccounts{
		Cash:                   viper.GetString("LEDGER_ACCOUNT_CASH"),
		Bank:                   viper.GetString("LEDGER_ACCOUNT_BANK"),
		Receivables:            viper.GetString("LEDGER_ACCOUNT_RECEIVABLES"),
		PrepaymentBase:         viper.GetString("LEDGER_ACCOUNT_PREPAYMENT_BASE"),
		SalesRevenue:           viper.GetString("LEDGER_ACCOUNT_SALES_REVENUE"),
		VATOutput:              viper.GetString("LEDGER_ACCOUNT_VAT_OUTPUT"),
		SalariesExpense:        viper.GetString("LEDGER_ACCOUNT_SALARIES_EXPENSE"),
		SalariesPayable:        viper.GetString("LEDGER_ACCOUNT_SALARIES_PAYABLE"),
		PAYEPayable:            viper.GetString("LEDGER_ACCOUNT_PAYE_PAYABLE"),
		PensionPayable:         viper.GetString("LEDGER_ACCOUNT_PENSION_PAYABLE"),
		NHISPayable:            viper.GetString("LEDGER_ACCOUNT_NHIS_PAYABLE"),
		NHFPayable:             viper.GetString("LEDGER_ACCOUNT_NHF_PAYABLE"),
		OtherDeductionsPayable: viper.GetString("LEDGER_ACCOUNT_OTHER_DEDUCTIONS_PAYABLE"),
	}
	if err := cfg.SystemAccounts.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate fails when any system account code is blank.
func (s SystemAccounts) Validate() error {
	var missing []string
	for key, code := range s.Codes() {
		if strings.TrimSpace(code) == "" {
			missing = append(missing, key)
		}
	}
	if strings.TrimSpace(s.PrepaymentBase) == "" {
		missing = append(missing, "LEDGER_ACCOUNT_PREPAYMENT_BASE")
	}
	if len(missing) > 0 {
		return fmt.Errorf("system account codes not configured: %s", strings.Join(missing, ", "))
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", true)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_ISSUER", "")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("LOCK_TTL", "30s")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("LEDGER_POSTING_POLICY", string(PostingStrict))
	viper.SetDefault("LEDGER_SEED_SYSTEM_ACCOUNTS", false)
	viper.SetDefault("LEDGER_RECOMPUTE_WORKERS", 4)

	viper.SetDefault("LEDGER_ACCOUNT_CASH", "1001")
	viper.SetDefault("LEDGER_ACCOUNT_BANK", "1002")
	viper.SetDefault("LEDGER_ACCOUNT_RECEIVABLES", "1101")
	viper.SetDefault("LEDGER_ACCOUNT_PREPAYMENT_BASE", "2103")
	viper.SetDefault("LEDGER_ACCOUNT_SALES_REVENUE", "4001")
	viper.SetDefault("LEDGER_ACCOUNT_VAT_OUTPUT", "2201")
	viper.SetDefault("LEDGER_ACCOUNT_SALARIES_EXPENSE", "5001")
	viper.SetDefault("LEDGER_ACCOUNT_SALARIES_PAYABLE", "2301")
	viper.SetDefault("LEDGER_ACCOUNT_PAYE_PAYABLE", "2302")
	viper.SetDefault("LEDGER_ACCOUNT_PENSION_PAYABLE", "2303")
	viper.SetDefault("LEDGER_ACCOUNT_NHIS_PAYABLE", "2304")
	viper.SetDefault("LEDGER_ACCOUNT_NHF_PAYABLE", "2305")
	viper.SetDefault("LEDGER_ACCOUNT_OTHER_DEDUCTIONS_PAYABLE", "2306")
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
