package config

const (
	defaultOutputRoot        = "~/.local/share/judgeboot/bootstrapped_judge_samples"
	defaultStateDir          = "~/.local/share/judgeboot/state"
	defaultLogDir            = "~/.local/share/judgeboot/logs"
	defaultSentenceDelimiter = "."
	defaultSamples           = 25
	defaultFilePattern       = "corpus_bstrap_sample_%d.txt"
	defaultDocumentSeparator = "\n"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// defaultStopWords are the ordinal suffixes left behind once digits are
// stripped from "1st", "2nd", "3rd", "4th".
var defaultStopWords = []string{"st", "nd", "th", "rd"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputRoot: defaultOutputRoot,
			StateDir:   defaultStateDir,
			LogDir:     defaultLogDir,
		},
		Tokenize: Tokenize{
			StopWords:         append([]string(nil), defaultStopWords...),
			SentenceDelimiter: defaultSentenceDelimiter,
		},
		Bootstrap: Bootstrap{
			Samples:           defaultSamples,
			FilePattern:       defaultFilePattern,
			DocumentSeparator: defaultDocumentSeparator,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
