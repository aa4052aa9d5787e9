package simupersona

// Options is the root command that groups sub-commands. The struct tags are
// interpreted by github.com/jessevdk/go-flags.
type Options struct {
	Config    string        `short:"f" long:"config" description:"config YAML path or URL"`
	EnvFile   []string      `short:"e" long:"env" description:".env file to load (repeatable, default .env)"`
	Version   bool          `short:"v" long:"version" description:"print version and exit"`
	Serve     *ServeCmd     `command:"serve" description:"Start HTTP server"`
	Chat      *ChatCmd      `command:"chat" description:"Chat with a persona"`
	Providers *ProvidersCmd `command:"providers" description:"List configured AI providers"`
	Test      *TestCmd      `command:"test" description:"Test AI provider connections"`
	Personas  *PersonasCmd  `command:"personas" description:"List personas visible to a user"`
}

// Init instantiates the sub-command referenced by the first argument so that
// flags.Parse can populate its fields.
func (o *Options) Init(firstArg string) {
	switch firstArg {
	case "serve":
		o.Serve = &ServeCmd{}
	case "chat":
		o.Chat = &ChatCmd{}
	case "providers":
		o.Providers = &ProvidersCmd{}
	case "test":
		o.Test = &TestCmd{}
	case "personas":
		o.Personas = &PersonasCmd{}
	}
}
