package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/fincalc/projection-engine/internal/domain"
	money "github.com/fincalc/projection-engine/pkg/decimal"
	"github.com/shopspring/decimal"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultAddr is the listen address used when the server section omits one
	DefaultAddr = ":8080"
	// DefaultLogLevel is used when the server section omits a log level
	DefaultLogLevel = "info"
)

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates configuration bytes, filling defaults for omitted settings
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ApplyDefaults(&config)

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ApplyDefaults fills presentation and server settings left empty
func ApplyDefaults(config *domain.Configuration) {
	if strings.TrimSpace(config.Currency.Symbol) == "" {
		config.Currency.Symbol = money.DefaultSymbol
	}
	if config.Server.Addr == "" {
		config.Server.Addr = DefaultAddr
	}
	if len(config.Server.AllowedOrigins) == 0 {
		config.Server.AllowedOrigins = []string{"*"}
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = DefaultLogLevel
	}
}

// ValidateConfiguration validates the loaded configuration.
// Out-of-range calculator parameters are rejected, never clamped.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config.IsEmpty() {
		return fmt.Errorf("%w: no calculator inputs provided", domain.ErrInvalidParameter)
	}

	if config.CompoundInterest != nil {
		if err := domain.Validate(*config.CompoundInterest); err != nil {
			return fmt.Errorf("compound_interest: %w", err)
		}
	}
	if config.Loan != nil {
		if err := domain.Validate(*config.Loan); err != nil {
			return fmt.Errorf("loan: %w", err)
		}
	}
	if config.Retirement != nil {
		if err := domain.Validate(*config.Retirement); err != nil {
			return fmt.Errorf("retirement: %w", err)
		}
	}
	if config.SIP != nil {
		if err := domain.Validate(*config.SIP); err != nil {
			return fmt.Errorf("sip: %w", err)
		}
	}
	if config.HomeAffordability != nil {
		if err := domain.Validate(*config.HomeAffordability); err != nil {
			return fmt.Errorf("home_affordability: %w", err)
		}
	}

	if err := ip.validateServer(&config.Server); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	for i := range config.Transactions {
		if err := ip.validateTransaction(&config.Transactions[i]); err != nil {
			return fmt.Errorf("transaction %d: %w", i, err)
		}
	}

	return nil
}

func (ip *InputParser) validateServer(s *domain.ServerSettings) error {
	if s.LogLevel != "" {
		if _, err := zapcore.ParseLevel(s.LogLevel); err != nil {
			return domain.NewValidationError("log_level", "must be one of debug, info, warn, error")
		}
	}
	return nil
}

// validateTransaction validates a single ledger entry
func (ip *InputParser) validateTransaction(tx *domain.Transaction) error {
	var errs domain.ValidationErrors
	if strings.TrimSpace(tx.Title) == "" {
		errs = append(errs, domain.NewValidationError("title", "is required"))
	}
	if strings.TrimSpace(tx.Category) == "" {
		errs = append(errs, domain.NewValidationError("category", "is required"))
	}
	if tx.Date.IsZero() {
		errs = append(errs, domain.NewValidationError("date", "is required"))
	}
	if tx.Amount.IsNegative() {
		errs = append(errs, domain.NewValidationError("amount", "must be at least 0"))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SaveConfiguration writes config to filename as YAML
func (ip *InputParser) SaveConfiguration(config *domain.Configuration, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// CreateExampleConfiguration creates an example configuration populated with
// the default values of every calculator
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Currency: domain.CurrencySettings{Symbol: money.DefaultSymbol},
		CalculatorInputs: domain.CalculatorInputs{
			CompoundInterest: &domain.CompoundParams{
				Principal:           decimal.NewFromInt(100000),
				AnnualRatePct:       decimal.NewFromInt(10),
				Years:               5,
				CompoundingsPerYear: 12,
			},
			Loan: &domain.LoanParams{
				Principal:     decimal.NewFromInt(1000000),
				AnnualRatePct: decimal.NewFromFloat(8.5),
				TermYears:     20,
			},
			Retirement: &domain.RetirementParams{
				CurrentAge:          30,
				RetirementAge:       60,
				MonthlyContribution: decimal.NewFromInt(10000),
				CurrentSavings:      decimal.NewFromInt(100000),
				ExpectedReturnPct:   decimal.NewFromInt(8),
				InflationPct:        decimal.NewFromInt(3),
			},
			SIP: &domain.SipParams{
				MonthlyInvestment: decimal.NewFromInt(5000),
				Years:             10,
				AnnualReturnPct:   decimal.NewFromInt(12),
			},
			HomeAffordability: &domain.AffordabilityParams{
				AnnualIncome:  decimal.NewFromInt(1200000),
				MonthlyDebts:  decimal.NewFromInt(20000),
				DownPayment:   decimal.NewFromInt(2000000),
				AnnualRatePct: decimal.NewFromFloat(8.5),
				TermYears:     20,
			},
		},
		Server: domain.ServerSettings{
			Addr:           DefaultAddr,
			AllowedOrigins: []string{"*"},
			LogLevel:       DefaultLogLevel,
		},
	}
}
