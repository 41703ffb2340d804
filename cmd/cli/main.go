package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mvboucas12/stock-price-alerts/internal/config"
	"github.com/mvboucas12/stock-price-alerts/internal/domain"
	"github.com/mvboucas12/stock-price-alerts/internal/notify"
	"github.com/mvboucas12/stock-price-alerts/internal/portfolio"
	"github.com/mvboucas12/stock-price-alerts/internal/pricing"
	"github.com/mvboucas12/stock-price-alerts/internal/report"
	"github.com/mvboucas12/stock-price-alerts/internal/service"
	"github.com/mvboucas12/stock-price-alerts/pkg/logger"
	"github.com/mvboucas12/stock-price-alerts/pkg/metrics"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "stock-price-alerts",
		Short: "Alerta de preços de ativos",
		Long: `Verifica a carteira contra os preços alvo definidos e envia um
resumo por e-mail com os ativos negociados abaixo do alvo dentro da
faixa de desconto configurada.`,
	}

	// Comando run
	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Executa o pipeline completo e envia o e-mail de alerta",
		RunE: func(cmd *cobra.Command, args []string) error {
			portfolioPath, _ := cmd.Flags().GetString("portfolio")
			return runAlerts(portfolioPath)
		},
	}
	runCmd.Flags().StringP("portfolio", "p", "", "Caminho da carteira CSV (padrão: PORTFOLIO_PATH)")

	// Comando check
	var checkCmd = &cobra.Command{
		Use:   "check",
		Short: "Avalia a carteira e mostra o resultado no console, sem enviar e-mail",
		RunE: func(cmd *cobra.Command, args []string) error {
			portfolioPath, _ := cmd.Flags().GetString("portfolio")
			return checkAlerts(portfolioPath)
		},
	}
	checkCmd.Flags().StringP("portfolio", "p", "", "Caminho da carteira CSV (padrão: PORTFOLIO_PATH)")

	// Comando preview
	var previewCmd = &cobra.Command{
		Use:   "preview",
		Short: "Renderiza o relatório HTML sem enviar",
		RunE: func(cmd *cobra.Command, args []string) error {
			portfolioPath, _ := cmd.Flags().GetString("portfolio")
			output, _ := cmd.Flags().GetString("output")
			return previewReport(portfolioPath, output)
		},
	}
	previewCmd.Flags().StringP("portfolio", "p", "", "Caminho da carteira CSV (padrão: PORTFOLIO_PATH)")
	previewCmd.Flags().StringP("output", "o", "", "Arquivo de saída (padrão: stdout)")

	// Comando health
	var healthCmd = &cobra.Command{
		Use:   "health",
		Short: "Verifica provedores de preço e configuração de envio",
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol, _ := cmd.Flags().GetString("symbol")
			return checkHealth(symbol)
		},
	}
	healthCmd.Flags().StringP("symbol", "s", "PETR4.SA", "Símbolo usado para testar os provedores")

	rootCmd.AddCommand(runCmd, checkCmd, previewCmd, healthCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func thresholds(cfg *config.Config) domain.Thresholds {
	return domain.Thresholds{
		MinPct: decimal.NewFromFloat(cfg.MinAlertPct),
		MaxPct: decimal.NewFromFloat(cfg.MaxAlertPct),
	}
}

// setup loads config, the portfolio and the resolver shared by every
// command. portfolioPath overrides the configured path when non-empty.
func setup(portfolioPath string) (*config.Config, []domain.PortfolioEntry, *pricing.Resolver, error) {
	cfg := config.Load()

	if err := logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		return nil, nil, nil, fmt.Errorf("erro ao iniciar logger: %w", err)
	}

	if portfolioPath == "" {
		portfolioPath = cfg.PortfolioPath
	}

	entries, err := portfolio.Load(portfolioPath)
	if err != nil {
		return nil, nil, nil, err
	}

	providers, err := pricing.FromPriority(cfg.ProviderPriority, pricing.Options{
		Timeout:      cfg.ProviderTimeout,
		BrapiBaseURL: cfg.BrapiBaseURL,
		BrapiToken:   cfg.BrapiToken,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, entries, pricing.NewResolver(providers, cfg.ProviderTimeout), nil
}

// runAlerts executa o pipeline completo, incluindo o envio por SES.
func runAlerts(portfolioPath string) error {
	ctx := context.Background()

	cfg, entries, resolver, err := setup(portfolioPath)
	if err != nil {
		return err
	}
	defer logger.Close()

	var notifier notify.Notifier
	if cfg.SenderEmail != "" {
		notifier, err = notify.NewSESNotifier(ctx, cfg.SESRegion, cfg.SenderEmail)
		if err != nil {
			return err
		}
	}

	svc := service.NewAlertRunService(resolver, notifier, thresholds(cfg), cfg.RecipientEmail, cfg.Workers)

	fmt.Printf("🚀 Analisando %d ativos da carteira...\n", len(entries))

	summary, err := svc.Run(ctx, entries)

	if cfg.MetricsEnabled && cfg.PushgatewayURL != "" {
		if pushErr := metrics.Push(cfg.PushgatewayURL); pushErr != nil {
			fmt.Printf("⚠️  Falha ao enviar métricas: %v\n", pushErr)
		}
	}

	if err != nil {
		return err
	}

	fmt.Printf("\n📊 %d avaliados | 🔔 %d alertas | 🚫 %d ignorados\n",
		summary.Evaluated, summary.Alerts, summary.Ignored)

	if summary.EmailSent {
		fmt.Printf("✅ E-mail enviado para %s\n", cfg.RecipientEmail)
	} else {
		fmt.Println("📭 Nenhum ativo atende ao critério. E-mail não enviado.")
	}

	return nil
}

// checkAlerts imprime o resultado da avaliação no console.
func checkAlerts(portfolioPath string) error {
	ctx := context.Background()

	cfg, entries, resolver, err := setup(portfolioPath)
	if err != nil {
		return err
	}
	defer logger.Close()

	svc := service.NewAlertRunService(resolver, nil, thresholds(cfg), "", cfg.Workers)
	rep := svc.Report(ctx, entries)

	if !rep.HasAlerts() {
		fmt.Println("📭 Nenhum ativo dentro da faixa de alerta.")
	}

	for _, group := range rep.Groups {
		fmt.Printf("\n💱 Ativos em %s:\n", group.Currency)
		for _, instrument := range group.Alerts {
			fmt.Printf("  🔔 %-10s alvo=%s  atual=%s  var=%s%%\n",
				instrument.Entry.Symbol,
				report.FormatCurrency(instrument.Entry.TargetPrice, instrument.Entry.Currency),
				report.FormatCurrency(instrument.Quote.Price, instrument.Entry.Currency),
				instrument.DeviationPct.StringFixed(2))
		}
	}

	if len(rep.Ignored) > 0 {
		fmt.Printf("\n🚫 Ignorados:\n")
		for _, ignored := range rep.Ignored {
			fmt.Printf("  - %-10s %s\n", ignored.Symbol, ignored.Reason)
		}
	}

	return nil
}

// previewReport renderiza o HTML do e-mail sem enviar.
func previewReport(portfolioPath, output string) error {
	ctx := context.Background()

	cfg, entries, resolver, err := setup(portfolioPath)
	if err != nil {
		return err
	}
	defer logger.Close()

	svc := service.NewAlertRunService(resolver, nil, thresholds(cfg), "", cfg.Workers)
	rep := svc.Report(ctx, entries)

	body, err := report.Render(rep, thresholds(cfg))
	if err != nil {
		return err
	}

	if output == "" {
		fmt.Println(body)
		return nil
	}

	if err := os.WriteFile(output, []byte(body), 0644); err != nil {
		return fmt.Errorf("erro ao gravar %s: %w", output, err)
	}
	fmt.Printf("✅ Relatório gravado em %s\n", output)

	return nil
}

// checkHealth testa cada provedor configurado e a configuração de envio.
func checkHealth(symbol string) error {
	ctx := context.Background()
	cfg := config.Load()

	if err := logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		return err
	}
	defer logger.Close()

	providers, err := pricing.FromPriority(cfg.ProviderPriority, pricing.Options{
		Timeout:      cfg.ProviderTimeout,
		BrapiBaseURL: cfg.BrapiBaseURL,
		BrapiToken:   cfg.BrapiToken,
	})
	if err != nil {
		return err
	}

	fmt.Printf("🏥 Verificando provedores com %s...\n\n", symbol)

	for _, provider := range providers {
		fmt.Printf("%s: ", provider.Name())

		callCtx, cancel := context.WithTimeout(ctx, cfg.ProviderTimeout)
		price, err := provider.Fetch(callCtx, symbol)
		cancel()

		if err != nil {
			fmt.Printf("❌ Erro: %v\n", err)
		} else {
			fmt.Printf("✅ OK (%s)\n", price.StringFixed(2))
		}
	}

	fmt.Print("\nSES: ")
	if cfg.SenderEmail == "" {
		fmt.Println("❌ SENDER_EMAIL não configurado")
	} else if _, err := notify.NewSESNotifier(ctx, cfg.SESRegion, cfg.SenderEmail); err != nil {
		fmt.Printf("❌ Erro: %v\n", err)
	} else {
		fmt.Println("✅ OK")
	}

	fmt.Println("\n✅ Verificação concluída!")
	return nil
}
