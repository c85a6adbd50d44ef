package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/eapache/queue"
	"github.com/spf13/cobra"

	"github.com/joshuapare/slabkit/collections"
	"github.com/joshuapare/slabkit/internal/contract"
	"github.com/joshuapare/slabkit/storage"
	"github.com/joshuapare/slabkit/traits"
)

var (
	traceBackend  string
	traceCapacity int
	traceOps      string
	tracePaged    bool
)

func init() {
	cmd := newTraceCmd()
	cmd.Flags().StringVar(&traceBackend, "backend", "array", "Container to drive: array, fixed, list or pool")
	cmd.Flags().IntVar(&traceCapacity, "capacity", 0, "Initial capacity (array) or bound (fixed, pool)")
	cmd.Flags().StringVar(&traceOps, "ops", "push:11,pop:5", "Comma-separated operations")
	cmd.Flags().BoolVar(&tracePaged, "paged", false, "Back array and fixed containers with mapped pages")
	addPolicyFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func newTraceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Run an operation script against a container",
		Long: `The trace command runs a script of operations against one container
and prints its length and capacity after every step.

Operations:
  push:N      push N values
  pop:N       pop N values
  reserve:N   reserve capacity for N elements (array only)
  shrink      shrink capacity to fit (array only)
  release     destroy all elements and free storage

A step that breaks a container precondition, such as popping an empty
stack or pushing onto a full fixed array, stops the trace with an error.

Example:
  slabctl trace --ops push:11,pop:5
  slabctl trace --backend fixed --capacity 5 --ops push:5,pop:2
  slabctl trace --backend pool --capacity 8 --ops push:8,pop:8,push:3 --json
  slabctl trace --policy doubling --ops push:100,shrink`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace()
		},
	}
	return cmd
}

// step is one parsed operation.
type step struct {
	op string
	n  int
}

func (s step) String() string {
	switch s.op {
	case "shrink", "release":
		return s.op
	}
	return fmt.Sprintf("%s:%d", s.op, s.n)
}

// parseOps turns a script into a FIFO of steps.
func parseOps(script string) (*queue.Queue, error) {
	q := queue.New()
	for _, field := range strings.Split(script, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		op, arg, hasArg := strings.Cut(field, ":")
		switch op {
		case "push", "pop", "reserve":
			if !hasArg {
				return nil, fmt.Errorf("operation %q needs a count", op)
			}
			n, err := strconv.Atoi(arg)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("invalid count in %q", field)
			}
			q.Add(step{op: op, n: n})
		case "shrink", "release":
			if hasArg {
				return nil, fmt.Errorf("operation %q takes no count", op)
			}
			q.Add(step{op: op})
		default:
			return nil, fmt.Errorf("unknown operation %q", op)
		}
	}
	if q.Length() == 0 {
		return nil, errors.New("no operations given")
	}
	return q, nil
}

// subject is a container under trace.
type subject struct {
	stack     traits.Stack[int]
	unbounded traits.Unbounded
	length    func() int
	capacity  func() int
	release   func()
	next      int
}

func newSubject(backend string, capacity int, paged bool, policy collections.ResizingPolicy) (*subject, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("--capacity must not be negative, got %d", capacity)
	}
	var backing storage.Backing[int]
	if paged {
		if backend != "array" && backend != "fixed" {
			return nil, fmt.Errorf("--paged applies to the array and fixed backends, not %q", backend)
		}
		backing = storage.NewPagedBacking[int]()
	}

	switch backend {
	case "array":
		a := collections.NewArrayWith(capacity, collections.ArrayOptions[int]{Policy: policy, Backing: backing})
		return &subject{stack: a, unbounded: a, length: a.Len, capacity: a.Cap, release: a.Release}, nil
	case "fixed":
		a := collections.NewFixedArrayWith(capacity, backing)
		return &subject{stack: a, length: a.Len, capacity: a.Cap, release: a.Release}, nil
	case "list":
		s := collections.NewLinkedStack[int]()
		return &subject{stack: s, length: s.Len, capacity: func() int { return -1 }, release: s.Release}, nil
	case "pool":
		pool := storage.NewPool[collections.Node[int]](capacity)
		s := collections.NewLinkedStackWith[int](pool)
		return &subject{stack: s, length: s.Len, capacity: pool.Cap, release: s.Release}, nil
	}
	return nil, fmt.Errorf("unknown backend %q", backend)
}

// apply runs one step, turning contract violations into errors.
func (s *subject) apply(st step) error {
	if (st.op == "reserve" || st.op == "shrink") && s.unbounded == nil {
		return fmt.Errorf("%s: backend has no adjustable capacity", st)
	}
	return contract.Recover(func() {
		switch st.op {
		case "push":
			for i := 0; i < st.n; i++ {
				s.stack.Push(s.next)
				s.next++
			}
		case "pop":
			for i := 0; i < st.n; i++ {
				s.stack.Pop()
			}
		case "reserve":
			s.unbounded.Reserve(st.n)
		case "shrink":
			s.unbounded.ShrinkToFit()
		case "release":
			s.release()
		}
	})
}

// TraceStep records container state after one operation.
type TraceStep struct {
	Step int    `json:"step"`
	Op   string `json:"op"`
	Len  int    `json:"len"`
	Cap  int    `json:"cap"`
}

// TraceResult is the JSON form of the trace command's output.
type TraceResult struct {
	Backend string      `json:"backend"`
	Policy  string      `json:"policy,omitempty"`
	Steps   []TraceStep `json:"steps"`
	Error   string      `json:"error,omitempty"`
}

func runTrace() error {
	ops, err := parseOps(traceOps)
	if err != nil {
		return err
	}
	policy, err := loadPolicy(policyName, policyFile)
	if err != nil {
		return err
	}
	subj, err := newSubject(traceBackend, traceCapacity, tracePaged, policy)
	if err != nil {
		return err
	}
	defer subj.release()

	res := TraceResult{Backend: traceBackend}
	if traceBackend == "array" {
		res.Policy = policy.String()
	}
	res.Steps = append(res.Steps, TraceStep{Op: "init", Len: subj.length(), Cap: subj.capacity()})

	var stepErr error
	for i := 1; ops.Length() > 0; i++ {
		st := ops.Remove().(step)
		if stepErr = subj.apply(st); stepErr != nil {
			stepErr = fmt.Errorf("step %d (%s): %w", i, st, stepErr)
			res.Error = stepErr.Error()
			break
		}
		res.Steps = append(res.Steps, TraceStep{Step: i, Op: st.String(), Len: subj.length(), Cap: subj.capacity()})
	}

	if jsonOut {
		if err := printJSON(res); err != nil {
			return err
		}
		return stepErr
	}

	rows := make([][]string, 0, len(res.Steps))
	for _, s := range res.Steps {
		capacity := "-"
		if s.Cap >= 0 {
			capacity = strconv.Itoa(s.Cap)
		}
		rows = append(rows, []string{strconv.Itoa(s.Step), s.Op, strconv.Itoa(s.Len), capacity})
	}
	if res.Policy != "" {
		printInfo("Backend %s, policy %s\n", res.Backend, res.Policy)
	} else {
		printInfo("Backend %s\n", res.Backend)
	}
	printInfo("%s\n", renderTable([]string{"step", "op", "len", "cap"}, rows, 0, 2, 3))
	return stepErr
}
