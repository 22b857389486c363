package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/project/streamline/config"
	"github.com/project/streamline/streamengine"
	"github.com/project/streamline/streamengine/compile"
	"github.com/project/streamline/streamengine/executor"
	"github.com/project/streamline/streamengine/monoid"
	"github.com/project/streamline/streamengine/telemetry"
)

// main is a smoke-test harness, not the query-language CLI spec.md's
// Non-goals exclude: it wires one demonstration pipeline (parse -> monoid
// sum, split by even/odd) over newline-delimited stdin and prints the
// final snapshot.
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("can not get application config: %s", err)
	}

	logger, err := newFileLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("can not initialize logger: %s", err)
	}
	defer logger.Sync()

	tel, err := telemetry.New(cfg)
	if err != nil {
		log.Fatalf("can not initialize telemetry: %s", err)
	}

	if err := run(cfg, logger, tel); err != nil {
		log.Fatalf("run: %s", err)
	}
}

func run(cfg *config.Config, logger *zap.Logger, tel *telemetry.Telemetry) error {
	descriptor := map[string]any{
		"even_sum": []any{
			streamengine.FilterGenerator(func(m streamengine.Message) bool { return m.(int)%2 == 0 }),
			monoid.Sum(),
		},
		"odd_sum": []any{
			streamengine.FilterGenerator(func(m streamengine.Message) bool { return m.(int)%2 != 0 }),
			monoid.Sum(),
		},
	}

	gen, err := compile.Compile(descriptor)
	if err != nil {
		return fmt.Errorf("compile pipeline: %w", err)
	}

	pool := executor.NewPool(cfg.Executor.Workers)
	sem := executor.NewSemaphore(cfg.Executor.SemaphorePermits)

	op, err := gen.Create(context.Background(), streamengine.Options{
		Pool:           pool,
		Semaphore:      sem,
		BufferCapacity: cfg.Buffered.Capacity,
	})
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			logger.Warn("skipping unparseable line", zap.String("line", line))
			continue
		}
		op.ProcessAll(ctx, []streamengine.Message{n})
		tel.MessagesProcessed.Inc()
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	ctx, end := tel.StartBarrierSpan(ctx, "cmd.flush")
	if flushable, ok := op.(streamengine.BufferedAggregator); ok {
		flushable.Flush(ctx)
	}
	end()

	ag := op.(streamengine.Aggregator)
	fmt.Printf("%+v\n", ag.Deref(ctx))

	return tel.Shutdown(context.Background())
}

func newFileLogger(level string) (*zap.Logger, error) {
	const logFile = "/tmp/streamline.log"

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	writeSyncer := zapcore.AddSync(file)
	encoderCfg := zap.NewProductionEncoderConfig()
	encoder := zapcore.NewJSONEncoder(encoderCfg)
	core := zapcore.NewCore(encoder, writeSyncer, lvl)

	return zap.New(core), nil
}
