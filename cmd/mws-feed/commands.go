package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/darkkaiser/mws-feed/internal/config"
	"github.com/darkkaiser/mws-feed/internal/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// globalFlags 모든 하위 명령이 공유하는 플래그 값입니다.
type globalFlags struct {
	configFile string
}

func (f *globalFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.configFile, "config", "c", config.DefaultFilename, "설정 파일 경로")
}

// newRootCommand 최상위 명령을 생성합니다. 하위 명령 없이 실행하면 generate와 같이 동작합니다.
func newRootCommand() *cobra.Command {
	flags := &globalFlags{}
	generate := &generateFlags{}

	root := &cobra.Command{
		Use:   config.AppName,
		Short: "상품 카탈로그로부터 Amazon MWS Product 피드 문서를 생성합니다",
		Long: "상품 카탈로그(JSON)를 읽어 Amazon MWS Product 피드 XML 문서를 생성하고,\n" +
			"XSD 스키마로 검증한 뒤 출력 디렉토리에 저장합니다.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerateCommand(cmd, flags, generate)
		},
	}
	flags.register(root.PersistentFlags())
	generate.register(root.Flags())

	root.AddCommand(
		newGenerateCommand(flags),
		newServeCommand(flags),
		newVersionCommand(),
	)

	return root
}

// generateFlags generate 명령에서 설정 파일의 값을 덮어쓰는 플래그입니다.
type generateFlags struct {
	catalogFile string
	outputDir   string
	noValidate  bool
}

func (f *generateFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.catalogFile, "catalog", "", "카탈로그 파일 경로 (설정 파일의 catalog.file 대체)")
	fs.StringVar(&f.outputDir, "output", "", "피드 문서 저장 디렉토리 (설정 파일의 output.dir 대체)")
	fs.BoolVar(&f.noValidate, "no-validate", false, "스키마 검증을 수행하지 않습니다")
}

// apply 지정된 플래그 값으로 설정을 덮어씁니다.
func (f *generateFlags) apply(appConfig *config.AppConfig) {
	if f.catalogFile != "" {
		appConfig.Catalog.File = f.catalogFile
	}
	if f.outputDir != "" {
		appConfig.Output.Dir = f.outputDir
	}
	if f.noValidate {
		appConfig.Feed.Validate = false
	}
}

func newGenerateCommand(flags *globalFlags) *cobra.Command {
	generate := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "카탈로그 파일로부터 피드 문서를 한 번 생성하고 종료합니다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerateCommand(cmd, flags, generate)
		},
	}
	generate.register(cmd.Flags())

	return cmd
}

func runGenerateCommand(cmd *cobra.Command, flags *globalFlags, generate *generateFlags) error {
	appConfig, err := config.LoadWithFile(flags.configFile)
	if err != nil {
		return err
	}
	generate.apply(appConfig)

	closer, err := setupLogging(appConfig)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApplication(appConfig)
	if err != nil {
		return err
	}

	_, err = a.generateOnce(ctx)
	return err
}

func newServeCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "피드 API 서버와 정기 생성 스케줄러를 실행합니다",
		Long: "설정에서 활성화된 피드 API 서버(api.enabled)와 정기 생성 스케줄러(scheduler.enabled)를\n" +
			"실행하고, SIGINT 또는 SIGTERM 신호를 받을 때까지 동작합니다.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			appConfig, err := config.LoadWithFile(flags.configFile)
			if err != nil {
				return err
			}

			closer, err := setupLogging(appConfig)
			if err != nil {
				return err
			}
			defer closer.Close()

			fmt.Fprintf(cmd.OutOrStdout(), banner, version.Get().Version)

			a, err := newApplication(appConfig)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return a.serve(ctx)
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "빌드 정보를 출력합니다",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
		},
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
