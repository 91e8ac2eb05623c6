package pathway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"strings"
	"testing"

	"github.com/google/subcommands"

	"github.com/atacflux/atacflux/cmd/atac/rest"
	"github.com/atacflux/atacflux/cmd/atac/rest/mock"
	apigem "github.com/atacflux/atacflux/pkg/api/types/gem"
)

func clientOf(c rest.Client) func() rest.Client {
	return func() rest.Client { return c }
}

func execute(t *testing.T, cmd subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()

	f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatal(err)
	}
	return cmd.Execute(context.Background(), f)
}

func TestReactionsCommand(t *testing.T) {
	t.Run("it passes the flags as the listing query", func(t *testing.T) {
		m := mock.New(t)
		m.Impl.ListReactions = func(_ context.Context, q rest.ReactionQuery) (apigem.ReactionPage, error) {
			return apigem.ReactionPage{
				Reactions: []apigem.ReactionSummary{{ID: "GLYC", Name: "glucokinase"}},
				Total:     1, Limit: q.Limit, Offset: q.Offset,
			}, nil
		}

		out, errOut := new(bytes.Buffer), new(bytes.Buffer)
		testee := &reactionsCommand{client: clientOf(m), w: out, errw: errOut}

		status := execute(t, testee, "-q", "glucose", "-limit", "10", "-offset", "20", "-nonzero")
		if status != subcommands.ExitSuccess {
			t.Errorf("unmatch exit status:%d, expected:%d", status, subcommands.ExitSuccess)
		}

		if len(m.Calls.ListReactions) != 1 {
			t.Fatalf("ListReactions should be called once (actual = %d)", len(m.Calls.ListReactions))
		}
		expected := rest.ReactionQuery{Query: "glucose", Limit: 10, Offset: 20, NonzeroFlux: true}
		if actual := m.Calls.ListReactions[0]; actual != expected {
			t.Errorf("unmatch query:%+v, expected:%+v", actual, expected)
		}

		page := apigem.ReactionPage{}
		if err := json.Unmarshal(out.Bytes(), &page); err != nil {
			t.Fatal(err)
		}
		if len(page.Reactions) != 1 || page.Reactions[0].ID != "GLYC" {
			t.Errorf("unmatch output: %s", out.String())
		}
	})

	t.Run("it fails and reports the server error", func(t *testing.T) {
		m := mock.New(t)
		m.Impl.ListReactions = func(context.Context, rest.ReactionQuery) (apigem.ReactionPage, error) {
			return apigem.ReactionPage{}, errors.New("fake error")
		}

		out, errOut := new(bytes.Buffer), new(bytes.Buffer)
		testee := &reactionsCommand{client: clientOf(m), w: out, errw: errOut}

		if status := execute(t, testee); status != subcommands.ExitFailure {
			t.Errorf("unmatch exit status:%d, expected:%d", status, subcommands.ExitFailure)
		}
		if msg := errOut.String(); !strings.Contains(msg, "fake error") {
			t.Errorf("the error message is not reported: %s", msg)
		}
	})
}

func TestReactionCommand(t *testing.T) {
	t.Run("it fetches the named reaction", func(t *testing.T) {
		m := mock.New(t)
		m.Impl.GetReaction = func(_ context.Context, rxnID string) (apigem.ReactionDetail, error) {
			return apigem.ReactionDetail{ID: rxnID, Name: "glucokinase"}, nil
		}

		out, errOut := new(bytes.Buffer), new(bytes.Buffer)
		testee := &reactionCommand{client: clientOf(m), w: out, errw: errOut}

		if status := execute(t, testee, "GLYC"); status != subcommands.ExitSuccess {
			t.Errorf("unmatch exit status:%d, expected:%d", status, subcommands.ExitSuccess)
		}
		if expected := []string{"GLYC"}; len(m.Calls.GetReaction) != 1 || m.Calls.GetReaction[0] != expected[0] {
			t.Errorf("unmatch calls:%v, expected:%v", m.Calls.GetReaction, expected)
		}
		if !strings.Contains(out.String(), "glucokinase") {
			t.Errorf("unmatch output: %s", out.String())
		}
	})

	t.Run("it requires a reaction id", func(t *testing.T) {
		m := mock.New(t)

		out, errOut := new(bytes.Buffer), new(bytes.Buffer)
		testee := &reactionCommand{client: clientOf(m), w: out, errw: errOut}

		if status := execute(t, testee); status != subcommands.ExitUsageError {
			t.Errorf("unmatch exit status:%d, expected:%d", status, subcommands.ExitUsageError)
		}
		if len(m.Calls.GetReaction) != 0 {
			t.Errorf("GetReaction should not be called (actual = %d)", len(m.Calls.GetReaction))
		}
	})
}

func TestMetaboliteCommand(t *testing.T) {
	t.Run("it fetches the named metabolite", func(t *testing.T) {
		m := mock.New(t)
		m.Impl.GetMetabolite = func(_ context.Context, metID string) (apigem.MetaboliteDetail, error) {
			return apigem.MetaboliteDetail{ID: metID, Name: "D-glucose"}, nil
		}

		out, errOut := new(bytes.Buffer), new(bytes.Buffer)
		testee := &metaboliteCommand{client: clientOf(m), w: out, errw: errOut}

		if status := execute(t, testee, "glc_c"); status != subcommands.ExitSuccess {
			t.Errorf("unmatch exit status:%d, expected:%d", status, subcommands.ExitSuccess)
		}
		if expected := []string{"glc_c"}; len(m.Calls.GetMetabolite) != 1 || m.Calls.GetMetabolite[0] != expected[0] {
			t.Errorf("unmatch calls:%v, expected:%v", m.Calls.GetMetabolite, expected)
		}
	})
}

func TestSubsystemsCommand(t *testing.T) {
	t.Run("without an argument it lists subsystems", func(t *testing.T) {
		m := mock.New(t)
		m.Impl.Subsystems = func(context.Context) (apigem.SubsystemList, error) {
			return apigem.SubsystemList{
				Subsystems: []apigem.Subsystem{{Name: "Glycolysis", Count: 1, Reactions: []string{"GLYC"}}},
			}, nil
		}

		out, errOut := new(bytes.Buffer), new(bytes.Buffer)
		testee := &subsystemsCommand{client: clientOf(m), w: out, errw: errOut}

		if status := execute(t, testee); status != subcommands.ExitSuccess {
			t.Errorf("unmatch exit status:%d, expected:%d", status, subcommands.ExitSuccess)
		}
		if m.Calls.Subsystems != 1 {
			t.Errorf("Subsystems should be called once (actual = %d)", m.Calls.Subsystems)
		}
	})

	t.Run("with an argument it fetches that subsystem", func(t *testing.T) {
		m := mock.New(t)
		m.Impl.SubsystemReactions = func(_ context.Context, name string) (apigem.SubsystemDetail, error) {
			return apigem.SubsystemDetail{Subsystem: name}, nil
		}

		out, errOut := new(bytes.Buffer), new(bytes.Buffer)
		testee := &subsystemsCommand{client: clientOf(m), w: out, errw: errOut}

		if status := execute(t, testee, "Glycolysis"); status != subcommands.ExitSuccess {
			t.Errorf("unmatch exit status:%d, expected:%d", status, subcommands.ExitSuccess)
		}
		if expected := []string{"Glycolysis"}; len(m.Calls.SubsystemReactions) != 1 || m.Calls.SubsystemReactions[0] != expected[0] {
			t.Errorf("unmatch calls:%v, expected:%v", m.Calls.SubsystemReactions, expected)
		}
	})
}
