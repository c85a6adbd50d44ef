package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/slabkit/collections"
)

var (
	policyName string
	policyFile string
	policyMax  int
	policyStep int
	policyList bool
)

func init() {
	cmd := newPolicyCmd()
	cmd.Flags().IntVar(&policyMax, "max", 100, "Largest size to tabulate")
	cmd.Flags().IntVar(&policyStep, "step", 10, "Distance between tabulated sizes")
	cmd.Flags().BoolVar(&policyList, "list", false, "List the predefined policies")
	addPolicyFlags(cmd)
	rootCmd.AddCommand(cmd)
}

// addPolicyFlags registers --policy and --policy-file on cmd.
func addPolicyFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&policyName, "policy", "default", "Predefined growth policy (default, doubling, conservative)")
	cmd.Flags().StringVar(&policyFile, "policy-file", "", "YAML file describing a growth policy; overrides --policy")
}

func newPolicyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Tabulate a growth policy",
		Long: `The policy command shows, for a range of sizes, the capacity a full
array grows to, the largest capacity it keeps without shrinking, and the
capacity it shrinks to once that limit is exceeded.

A policy file is YAML:

  name: tight
  floor: 4
  grow_num: 5
  grow_den: 4
  trigger_num: 2
  trigger_den: 1
  target_num: 5
  target_den: 4

Example:
  slabctl policy
  slabctl policy --policy doubling --max 64 --step 8
  slabctl policy --policy-file tight.yaml --json
  slabctl policy --list`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if policyList {
				return runPolicyList()
			}
			return runPolicy()
		},
	}
	return cmd
}

// loadPolicy resolves the growth configuration named by the flags.
func loadPolicy(name, file string) (collections.GrowthConfig, error) {
	if file == "" {
		g, ok := collections.PresetByName(name)
		if !ok {
			return collections.GrowthConfig{}, fmt.Errorf("unknown policy %q", name)
		}
		return g, nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return collections.GrowthConfig{}, fmt.Errorf("failed to read policy file: %w", err)
	}
	var g collections.GrowthConfig
	if err := yaml.Unmarshal(data, &g); err != nil {
		return collections.GrowthConfig{}, fmt.Errorf("failed to parse policy file %s: %w", file, err)
	}
	if g.Name == "" {
		g.Name = filepath.Base(file)
	}
	if err := g.Validate(); err != nil {
		return collections.GrowthConfig{}, fmt.Errorf("policy file %s: %w", file, err)
	}
	return g, nil
}

// PolicyRow is one line of the policy table.
type PolicyRow struct {
	Size        int `json:"size"`
	Initial     int `json:"initial"`
	Grow        int `json:"grow"`
	ShrinkAbove int `json:"shrink_above"`
	ShrinkTo    int `json:"shrink_to"`
}

// PolicyTable is the JSON form of the policy command's output.
type PolicyTable struct {
	Policy collections.GrowthConfig `json:"policy"`
	Rows   []PolicyRow              `json:"rows"`
}

func tabulate(g collections.GrowthConfig, maxSize, step int) PolicyTable {
	out := PolicyTable{Policy: g}
	for size := 0; size <= maxSize; size += step {
		above := g.ShrinkAbove(size)
		out.Rows = append(out.Rows, PolicyRow{
			Size:        size,
			Initial:     g.Initial(size),
			Grow:        g.Grow(size),
			ShrinkAbove: above,
			ShrinkTo:    g.Shrink(size, above+1),
		})
	}
	return out
}

func runPolicy() error {
	if policyStep <= 0 {
		return fmt.Errorf("--step must be positive, got %d", policyStep)
	}
	if policyMax < 0 {
		return fmt.Errorf("--max must not be negative, got %d", policyMax)
	}
	g, err := loadPolicy(policyName, policyFile)
	if err != nil {
		return err
	}
	tab := tabulate(g, policyMax, policyStep)

	if jsonOut {
		return printJSON(tab)
	}

	rows := make([][]string, 0, len(tab.Rows))
	for _, r := range tab.Rows {
		rows = append(rows, []string{
			strconv.Itoa(r.Size),
			strconv.Itoa(r.Initial),
			strconv.Itoa(r.Grow),
			strconv.Itoa(r.ShrinkAbove),
			strconv.Itoa(r.ShrinkTo),
		})
	}
	printInfo("Policy %s (floor %d, grow x%d/%d, shrink above x%d/%d to x%d/%d)\n",
		g, g.Floor, g.GrowNum, g.GrowDen, g.TriggerNum, g.TriggerDen, g.TargetNum, g.TargetDen)
	printInfo("%s\n", renderTable(
		[]string{"size", "initial", "grow", "keeps up to", "shrinks to"}, rows, 0, 1, 2, 3, 4))
	return nil
}

func runPolicyList() error {
	presets := collections.Presets()
	if jsonOut {
		return printJSON(presets)
	}

	rows := make([][]string, 0, len(presets))
	for _, p := range presets {
		rows = append(rows, []string{
			p.Name,
			strconv.Itoa(p.Floor),
			fmt.Sprintf("%d/%d", p.GrowNum, p.GrowDen),
			fmt.Sprintf("%d/%d", p.TriggerNum, p.TriggerDen),
			fmt.Sprintf("%d/%d", p.TargetNum, p.TargetDen),
		})
	}
	printInfo("%s\n", renderTable([]string{"name", "floor", "grow", "trigger", "target"}, rows, 1))
	return nil
}
