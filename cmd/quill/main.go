// Command quill is the thin REPL/runner grounded on the teacher's
// ivy.go: parse flags, build one engine, then either run a script
// file to completion or loop reading expressions from stdin and
// printing each result. Resource limits can additionally be supplied
// through the environment or a config file via Viper (SPEC_FULL §2.3)
// — this is the only place in the module that reads outside config
// passed in by a host's own Go code.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"

	"github.com/quill-lang/quill/config"
	"github.com/quill-lang/quill/engine"
)

var (
	promptFlag     = flag.String("prompt", "> ", "expression prompt")
	configFileFlag = flag.String("config", "", "optional config file (viper: yaml/json/toml)")
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("quill: ")
	flag.Parse()

	cfg := config.New()
	cfg.SetPrompt(*promptFlag)
	loadResourceLimits(cfg, *configFileFlag)

	e := engine.New(cfg)

	switch flag.NArg() {
	case 0:
		repl(e, cfg)
	case 1:
		runFile(e, flag.Arg(0))
	default:
		flag.Usage()
		os.Exit(2)
	}
}

// loadResourceLimits reads max_lines, max_microseconds and
// indent_spaces from QUILL_-prefixed environment variables or an
// optional config file, overriding cfg's defaults (spec §4.10, §4.7).
func loadResourceLimits(cfg *config.Config, configFile string) {
	v := viper.New()
	v.SetEnvPrefix("quill")
	v.AutomaticEnv()
	v.SetDefault("max_lines", config.DefaultMaxLines)
	v.SetDefault("max_microseconds", config.DefaultMaxMicroseconds)
	v.SetDefault("indent_spaces", config.DefaultIndentSpaces)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			log.Printf("quill: could not read config file %s: %v", configFile, err)
		}
	}

	cfg.SetMaxLines(v.GetInt64("max_lines"))
	cfg.SetMaxMicroseconds(v.GetInt64("max_microseconds"))
	cfg.SetIndentSpaces(v.GetInt("indent_spaces"))
}

func runFile(e *engine.Engine, path string) {
	src, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("%v", err)
	}
	result, err := e.Run(string(src))
	if err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Println(result.ToDisplayString())
}

func repl(e *engine.Engine, cfg *config.Config) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(cfg.Prompt())
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		result := e.Eval(line)
		fmt.Println(result.ToDisplayString())
	}
}
