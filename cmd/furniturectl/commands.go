package main

import (
	"fmt"
	"math/rand/v2"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/oriumgames/furniture"
	"github.com/oriumgames/furniture/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load the catalog and print every definition",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configDir)
		if err != nil {
			return err
		}
		reg, err := loadRegistry(cfg, newLogger(cfg.LogLevel))
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ITEM\tKIND\tROTATION\tROTATABLE\tCELLS\tCAPABILITIES")
		for _, def := range reg.All() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%d\t%s\n", def.ItemID(), def.Kind(), def.RestrictedRotation(),
				def.Rotatable(), len(def.Hitbox().Cells()), def.Capabilities())
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d definitions, evolving: %v\n", reg.Len(), reg.HasEvolvingFurniture())
		return nil
	},
}

var (
	placeYaw       float64
	placeFace      string
	placeAgainst   string
	placeNoSpace   bool
	breakTool      string
	breakSilkTouch bool
	breakSeed      uint64
)

var placeCmd = &cobra.Command{
	Use:   "place <item> <x,y,z>",
	Short: "Place a furniture in the sandbox",
	Long: `Places a furniture anchored at x,y,z. With --against the position is the
clicked block and the furniture is placed against its --face, applying
limited placing rules.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pos, err := parsePos(args[1])
		if err != nil {
			return err
		}
		face, err := parseFace(placeFace)
		if err != nil {
			return err
		}
		s, err := openSandbox()
		if err != nil {
			return err
		}
		defer s.close()

		def, ok := s.reg.Definition(args[0])
		if !ok {
			return fmt.Errorf("%w: %s", furniture.ErrUnknownPlacement, args[0])
		}
		var opts []furniture.PlaceOption
		if placeNoSpace {
			opts = append(opts, furniture.WithoutSpaceCheck())
		}
		var p *furniture.Placement
		if placeAgainst != "" {
			p, err = s.engine.PlaceAgainst(def, pos, face, placeYaw, placeAgainst, opts...)
		} else {
			p, err = s.engine.Place(def, pos, placeYaw, face, opts...)
		}
		if err != nil {
			return err
		}
		if err := s.commit(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "placed %s at %v yaw %.0f\n", p.ItemID(), p.Anchor, p.Yaw)
		return nil
	},
}

var rotateCmd = &cobra.Command{
	Use:   "rotate <x,y,z>",
	Short: "Rotate the furniture occupying a cell one step clockwise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pos, err := parsePos(args[0])
		if err != nil {
			return err
		}
		s, err := openSandbox()
		if err != nil {
			return err
		}
		defer s.close()

		p, err := s.engine.At(pos)
		if err != nil {
			return err
		}
		p, err = s.engine.Rotate(p.Base)
		if err != nil {
			return err
		}
		if err := s.commit(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "rotated %s at %v to yaw %.0f\n", p.ItemID(), p.Anchor, p.Yaw)
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <x,y,z>",
	Short: "Remove the furniture occupying a cell",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pos, err := parsePos(args[0])
		if err != nil {
			return err
		}
		s, err := openSandbox()
		if err != nil {
			return err
		}
		defer s.close()

		p, err := s.engine.At(pos)
		if err != nil {
			return err
		}
		if err := s.engine.Remove(p.Base); err != nil {
			s.log.Warn("furniture: removal incomplete", "error", err)
		}
		if err := s.commit(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %s at %v\n", p.ItemID(), p.Anchor)
		return nil
	},
}

var breakCmd = &cobra.Command{
	Use:   "break <x,y,z>",
	Short: "Break the furniture occupying a cell and print its drops",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pos, err := parsePos(args[0])
		if err != nil {
			return err
		}
		s, err := openSandbox()
		if err != nil {
			return err
		}
		defer s.close()

		p, err := s.engine.At(pos)
		if err != nil {
			return err
		}
		tool := furniture.Tool{Type: breakTool, SilkTouch: breakSilkTouch}
		rng := rand.New(rand.NewPCG(breakSeed, breakSeed))
		drops, err := s.engine.Break(uuid.Nil, p.Base, tool, rng)
		if err != nil {
			if drops == nil {
				return err
			}
			s.log.Warn("furniture: removal incomplete", "error", err)
		}
		if err := s.commit(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "broke %s at %v\n", p.ItemID(), p.Anchor)
		for _, it := range drops {
			fmt.Fprintf(cmd.OutOrStdout(), "  %dx %s\n", it.Count, it.ID)
		}
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the placements of the sandbox",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSandbox()
		if err != nil {
			return err
		}
		defer s.close()

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ITEM\tANCHOR\tYAW\tFACING\tSEATS\tSTAGE")
		for _, p := range s.engine.Placements() {
			fmt.Fprintf(w, "%s\t%d,%d,%d\t%.0f\t%s\t%d\t%d\n", p.ItemID(),
				p.Anchor.X(), p.Anchor.Y(), p.Anchor.Z(), p.Yaw, faceName(p.Facing), len(p.Seats), p.EvolutionStage)
		}
		return w.Flush()
	},
}

func init() {
	placeCmd.Flags().Float64Var(&placeYaw, "yaw", 0, "yaw in degrees")
	placeCmd.Flags().StringVar(&placeFace, "face", "up", "facing (up, down, north, south, east, west)")
	placeCmd.Flags().StringVar(&placeAgainst, "against", "", "block clicked; places against --face of the position")
	placeCmd.Flags().BoolVar(&placeNoSpace, "no-space-check", false, "skip the hitbox space check")

	breakCmd.Flags().StringVar(&breakTool, "tool", "", "tool type, e.g. DIAMOND_PICKAXE")
	breakCmd.Flags().BoolVar(&breakSilkTouch, "silk-touch", false, "tool has silk touch")
	breakCmd.Flags().Uint64Var(&breakSeed, "seed", 1, "drop roll seed")

	RootCmd.AddCommand(validateCmd, placeCmd, rotateCmd, removeCmd, breakCmd, listCmd)
}
