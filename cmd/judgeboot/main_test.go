package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"judgeboot/internal/config"
	"judgeboot/internal/ledger"
	"judgeboot/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cfg := testsupport.NewConfig(t, opts...)
	content, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	testsupport.WriteBytes(t, path, content)
	return &cliTestEnv{cfg: cfg, configPath: path}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func TestBuildThenReport(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteJudge(t, env.cfg.Paths.InputRoot, "alpha", map[string]string{
		"a.txt": "The court held that the appeal is denied.",
	})
	testsupport.WriteJudge(t, env.cfg.Paths.InputRoot, "zeta", map[string]string{
		"a.txt": "42. 1999.",
	})

	out, _, err := runCLI(t, []string{"build"}, env.configPath)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	requireContains(t, out, "alpha")
	requireContains(t, out, "Completed 1 of 2 judge(s)")
	requireContains(t, out, "Problematic judges (1):")
	requireContains(t, out, "zeta")

	samples, err := os.ReadDir(filepath.Join(env.cfg.Paths.OutputRoot, "alpha"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(samples) != 25 {
		t.Fatalf("expected 25 samples, got %d", len(samples))
	}

	out, _, err = runCLI(t, []string{"report"}, env.configPath)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	requireContains(t, out, "Status:      completed")
	requireContains(t, out, "skipped_empty")
	requireContains(t, out, "no usable content after cleaning")

	out, _, err = runCLI(t, []string{"report", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("report --json: %v", err)
	}
	var report struct {
		Run    ledger.Run           `json:"run"`
		Judges []ledger.JudgeRecord `json:"judges"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	if len(report.Judges) != 2 || report.Run.JudgesProblematic != 1 {
		t.Fatalf("unexpected report %+v", report)
	}

	out, _, err = runCLI(t, []string{"report", "--run", report.Run.ID[:8]}, env.configPath)
	if err != nil {
		t.Fatalf("report --run: %v", err)
	}
	requireContains(t, out, report.Run.ID)

	out, _, err = runCLI(t, []string{"runs"}, env.configPath)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	requireContains(t, out, report.Run.ID[:8])
}

func TestBuildJSONHonoursFlags(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteJudge(t, env.cfg.Paths.InputRoot, "alpha", map[string]string{"a.txt": "Appeal denied."})
	testsupport.WriteJudge(t, env.cfg.Paths.InputRoot, "beta", map[string]string{"b.txt": "Motion granted."})

	out, _, err := runCLI(t, []string{"build", "--json", "--samples", "3", "--seed", "99", "--judge", "beta"}, env.configPath)
	if err != nil {
		t.Fatalf("build --json: %v", err)
	}
	var summary struct {
		RunID      string `json:"run_id"`
		Seed       uint64 `json:"seed"`
		LedgerPath string `json:"ledger_path"`
		Judges     []struct {
			Judge  string `json:"judge"`
			Status string `json:"status"`
		} `json:"judges"`
	}
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("decode summary: %v\n%s", err, out)
	}
	if summary.RunID == "" || summary.Seed != 99 || summary.LedgerPath != env.cfg.LedgerPath() {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if len(summary.Judges) != 1 || summary.Judges[0].Judge != "beta" || summary.Judges[0].Status != "completed" {
		t.Fatalf("unexpected judges %+v", summary.Judges)
	}
	samples, err := os.ReadDir(filepath.Join(env.cfg.Paths.OutputRoot, "beta"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(samples) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(samples))
	}
	if _, err := os.Stat(filepath.Join(env.cfg.Paths.OutputRoot, "alpha")); !os.IsNotExist(err) {
		t.Fatalf("alpha should not be processed, stat err=%v", err)
	}
}

func TestBuildResumeSkipsCompletedJudges(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithSamples(2))
	testsupport.WriteJudge(t, env.cfg.Paths.InputRoot, "alpha", map[string]string{"a.txt": "Appeal denied."})

	if _, _, err := runCLI(t, []string{"build"}, env.configPath); err != nil {
		t.Fatalf("first build: %v", err)
	}
	out, _, err := runCLI(t, []string{"build", "--resume"}, env.configPath)
	if err != nil {
		t.Fatalf("resumed build: %v", err)
	}
	requireContains(t, out, "No judges processed")
	requireContains(t, out, "Skipped 1 judge(s) completed by an earlier run")
}

func TestBuildRejectsUnknownJudge(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteJudge(t, env.cfg.Paths.InputRoot, "alpha", map[string]string{"a.txt": "Appeal denied."})

	_, _, err := runCLI(t, []string{"build", "--judge", "nobody"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for unknown judge")
	}
	requireContains(t, err.Error(), "nobody")
}

func TestBuildFailsPreflightForMissingVocabulary(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.Remove(env.cfg.Paths.VocabularyFile); err != nil {
		t.Fatal(err)
	}
	_, _, err := runCLI(t, []string{"build"}, env.configPath)
	if err == nil {
		t.Fatal("expected preflight failure")
	}
	requireContains(t, err.Error(), "Vocabulary file")
}

func TestReportWithoutRuns(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"report"}, env.configPath)
	if err == nil {
		t.Fatal("expected error without runs")
	}
	requireContains(t, err.Error(), "no runs recorded")

	out, _, err := runCLI(t, []string{"runs"}, env.configPath)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	requireContains(t, out, "No runs recorded")
}

func TestVocabInspect(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithVocabulary("court", "appeal", "denied"))

	out, _, err := runCLI(t, []string{"vocab", "inspect", "--head", "2"}, env.configPath)
	if err != nil {
		t.Fatalf("vocab inspect: %v", err)
	}
	requireContains(t, out, "Format:     text")
	requireContains(t, out, "Words:      3")
	requireContains(t, out, "court appeal")
	if strings.Contains(out, "denied") {
		t.Fatalf("expected only two sample words, got %q", out)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "Input root")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected refusal to overwrite existing config")
	}
}

func TestLogLevelFlagIsValidated(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"--log-level", "loud", "runs"}, env.configPath); err == nil {
		t.Fatal("expected invalid log level to be rejected")
	}
	if _, _, err := runCLI(t, []string{"--log-level", "DEBUG", "runs"}, env.configPath); err != nil {
		t.Fatalf("expected debug level to be accepted: %v", err)
	}
}

func TestLogsPrintsRunLog(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.Paths.LogDir = filepath.Join(testsupport.BaseDir(env.cfg), "logs")
	content, err := toml.Marshal(env.cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	testsupport.WriteBytes(t, env.configPath, content)
	testsupport.WriteJudge(t, env.cfg.Paths.InputRoot, "alpha", map[string]string{"a.txt": "Appeal denied."})

	out, _, err := runCLI(t, []string{"build", "--samples", "1"}, env.configPath)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	requireContains(t, out, "Log: ")

	out, _, err = runCLI(t, []string{"logs", "-n", "200"}, env.configPath)
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	requireContains(t, out, "finished judge")
	requireContains(t, out, "all judges processed")
}
