package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zjrosen/membrane/binding"
	"github.com/zjrosen/membrane/builder"
	"github.com/zjrosen/membrane/component"
	"github.com/zjrosen/membrane/controller"
	"github.com/zjrosen/membrane/tracing"
)

var playgroundCmd = &cobra.Command{
	Use:   "playground",
	Short: "Build and run the demo component tree",
	Long: `Build a small component tree (app -> api, store, audit), start it,
print the lifecycle transitions observed while the cascade runs, and stop
it again. With tracing enabled, each start/stop emits spans.`,
	RunE: runPlayground,
}

func init() {
	rootCmd.AddCommand(playgroundCmd)
}

func runPlayground(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("configuring tracing: %w", err)
	}
	defer func() { _ = provider.Shutdown(context.Background()) }()

	root, err := buildDemoTree(out)
	if err != nil {
		return err
	}

	// Watch every lifecycle-capable node before starting.
	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := make([]<-chan controller.StatusChange, 0, 3)
	for _, c := range append([]*component.Component{root}, mustSubs(root)...) {
		if ch, err := controller.Watch(watchCtx, c); err == nil {
			events = append(events, ch)
		}
	}

	fmt.Fprintln(out, "starting tree...")
	if err := controller.Start(ctx, root); err != nil {
		return fmt.Errorf("starting tree: %w", err)
	}
	drainEvents(out, events)
	printStatuses(out, root)

	fmt.Fprintln(out, "stopping tree...")
	if err := controller.Stop(ctx, root); err != nil {
		return fmt.Errorf("stopping tree: %w", err)
	}
	drainEvents(out, events)
	printStatuses(out, root)

	return nil
}

// buildDemoTree wires app -> [api, store, audit]. The api component carries
// a bindable service interface; store carries parameters; audit has no
// lifecycle and is skipped by cascades.
func buildDemoTree(out io.Writer) (*component.Component, error) {
	api, err := builder.Build(nil,
		builder.WithName("api"),
		builder.WithScope(),
		builder.WithLifecycle(),
		builder.WithBindings(),
		builder.WithService("http"),
	)
	if err != nil {
		return nil, err
	}
	_, err = controller.Bind(api, "http", func(iface *binding.Interface) (*binding.Binding, error) {
		return binding.NewBinding(iface, "loopback",
			binding.OnStart(func(context.Context) error {
				fmt.Fprintln(out, "  binding http/loopback up")
				return nil
			}),
			binding.OnStop(func(context.Context) error {
				fmt.Fprintln(out, "  binding http/loopback down")
				return nil
			}),
		), nil
	})
	if err != nil {
		return nil, err
	}

	store, err := builder.Build(nil,
		builder.WithName("store"),
		builder.WithScope(),
		builder.WithLifecycle(),
		builder.WithParameters(map[string]any{"host": "localhost", "port": 5432}),
	)
	if err != nil {
		return nil, err
	}

	audit, err := builder.Build(nil,
		builder.WithName("audit"),
		builder.WithScope(),
	)
	if err != nil {
		return nil, err
	}

	return builder.Build(nil,
		builder.WithName("app"),
		builder.WithScope(),
		builder.WithLifecycle(),
		builder.WithSubComponents(api, store, audit),
	)
}

// mustSubs returns root's sub-components, empty on error.
func mustSubs(root *component.Component) []*component.Component {
	subs, err := controller.SubComponents(root)
	if err != nil {
		return nil
	}
	return subs
}

// drainEvents prints every buffered status change without blocking.
func drainEvents(out io.Writer, channels []<-chan controller.StatusChange) {
	for _, ch := range channels {
		for {
			select {
			case change := <-ch:
				fmt.Fprintf(out, "  %s: %s -> %s\n", change.ComponentName, change.Old, change.New)
				continue
			default:
			}
			break
		}
	}
}

// printStatuses prints the lifecycle state of root and its children.
func printStatuses(out io.Writer, root *component.Component) {
	for _, c := range append([]*component.Component{root}, mustSubs(root)...) {
		status, err := controller.StatusOf(c)
		if err != nil {
			fmt.Fprintf(out, "  %s: (no lifecycle)\n", controller.DisplayName(c))
			continue
		}
		fmt.Fprintf(out, "  %s: %s\n", controller.DisplayName(c), status)
	}
}
