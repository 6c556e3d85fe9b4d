package config

type PaymentConfig struct {
	Razorpay *RazorpayConfig `yaml:"razorpay"`
	Stripe   *StripeConfig   `yaml:"stripe"`
	UPI      *UPIConfig      `yaml:"upi"`
	// TestGatewayEnabled allows the zero-cost test gateway. Forced off in
	// production by PaymentService regardless of this flag.
	TestGatewayEnabled bool `yaml:"test_gateway_enabled"`
}

type RazorpayConfig struct {
	KeyID     string `yaml:"key_id"`
	KeySecret string `yaml:"key_secret"`
	Enabled   bool   `yaml:"enabled"`
}

type StripeConfig struct {
	SecretKey      string `yaml:"secret_key"`
	PublishableKey string `yaml:"publishable_key"`
	Enabled        bool   `yaml:"enabled"`
}

type UPIConfig struct {
	VPAHandle string `yaml:"vpa_handle"`
	PayeeName string `yaml:"payee_name"`
	Enabled   bool   `yaml:"enabled"`
}

func loadPaymentConfig() *PaymentConfig {
	return &PaymentConfig{
		Razorpay: &RazorpayConfig{
			KeyID:     getEnv("RAZORPAY_KEY_ID", ""),
			KeySecret: getEnv("RAZORPAY_KEY_SECRET", ""),
			Enabled:   getEnvAsBool("RAZORPAY_ENABLED", true),
		},
		Stripe: &StripeConfig{
			SecretKey:      getEnv("STRIPE_SECRET_KEY", ""),
			PublishableKey: getEnv("STRIPE_PUBLISHABLE_KEY", ""),
			Enabled:        getEnvAsBool("STRIPE_ENABLED", true),
		},
		UPI: &UPIConfig{
			VPAHandle: getEnv("UPI_VPA_HANDLE", "carefoundation@upi"),
			PayeeName: getEnv("UPI_PAYEE_NAME", "Care Foundation"),
			Enabled:   getEnvAsBool("UPI_ENABLED", true),
		},
		TestGatewayEnabled: getEnvAsBool("TEST_GATEWAY_ENABLED", true),
	}
}
