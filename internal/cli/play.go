package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lazypower/petd/internal/client"
	"github.com/lazypower/petd/internal/pet"
)

// printProfile renders a profile as a short status block.
func printProfile(w io.Writer, p *pet.Profile) {
	fmt.Fprintf(w, "%s (level %d, %d xp) - %d coins\n", p.Name, p.Level, p.XP, p.Coins)
	fmt.Fprintf(w, "  mood     %5.1f\n", p.Mood)
	fmt.Fprintf(w, "  hunger   %5.1f\n", p.Hunger)
	fmt.Fprintf(w, "  energy   %5.1f\n", p.Energy)
	fmt.Fprintf(w, "  hygiene  %5.1f\n", p.Hygiene)
	fmt.Fprintf(w, "  fun      %5.1f\n", p.Fun)

	var equipped []string
	for _, slot := range []string{pet.SlotHat, pet.SlotBackground} {
		if id, ok := p.Equipped(slot); ok {
			equipped = append(equipped, slot+"="+id)
		}
	}
	if len(equipped) > 0 {
		fmt.Fprintf(w, "  wearing  %s\n", strings.Join(equipped, ", "))
	}
}

func printResult(w io.Writer, r *client.Result) {
	fmt.Fprintln(w, r.Message)
	if r.Profile != nil {
		printProfile(w, r.Profile)
	}
}

// --- status command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the pet's current stats",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := client.NewClient().Profile()
		if err != nil {
			return err
		}
		printProfile(cmd.OutOrStdout(), p)
		return nil
	},
}

// --- act command ---

var actCmd = &cobra.Command{
	Use:       "act <feed|sleep|clean|play>",
	Short:     "Perform a care action",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"feed", "sleep", "clean", "play"},
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := client.NewClient().Act(args[0])
		if err != nil {
			return err
		}
		printResult(cmd.OutOrStdout(), r)
		return nil
	},
}

// --- shop commands ---

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "List shop items",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := client.NewClient().Shop()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		for _, it := range items {
			fmt.Fprintf(w, "%-10s %-12s %-14s %4d coins\n", it.ID, it.Type, it.Name, it.Price)
		}
		return nil
	},
}

var buyCmd = &cobra.Command{
	Use:   "buy <item_id>",
	Short: "Buy and equip a shop item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := client.NewClient().Buy(args[0])
		if err != nil {
			return err
		}
		printResult(cmd.OutOrStdout(), r)
		return nil
	},
}

var equipCmd = &cobra.Command{
	Use:   "equip <item_id>",
	Short: "Equip an owned item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := client.NewClient().Equip(args[0])
		if err != nil {
			return err
		}
		printResult(cmd.OutOrStdout(), r)
		return nil
	},
}

// --- minigame command ---

var minigameDuration int

var minigameCmd = &cobra.Command{
	Use:   "minigame <score>",
	Short: "Submit a minigame result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		score, err := strconv.Atoi(args[0])
		if err != nil || score < 0 {
			return fmt.Errorf("score must be a non-negative integer, got %q", args[0])
		}
		var duration *int
		if cmd.Flags().Changed("duration") {
			duration = &minigameDuration
		}
		r, err := client.NewClient().Minigame(score, duration)
		if err != nil {
			return err
		}
		printResult(cmd.OutOrStdout(), r)
		return nil
	},
}

func init() {
	minigameCmd.Flags().IntVar(&minigameDuration, "duration", 0, "Round duration in milliseconds")
}
