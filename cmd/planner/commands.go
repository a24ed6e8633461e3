package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"planner/internal/engine"
	"planner/internal/task"
	"planner/internal/view"
)

const dateLayout = "2006-01-02"

func parseDay(v string) (time.Time, error) {
	if v == "" {
		return time.Now(), nil
	}
	d, err := time.ParseInLocation(dateLayout, v, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", v)
	}
	return d, nil
}

// datesCmd implements 'planner dates'.
func datesCmd(opts *rootOptions) *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "dates",
		Short: "Print the browsable dates for a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ref := time.Now()
			if month != "" {
				m, err := time.ParseInLocation("2006-01", month, time.Local)
				if err != nil {
					return fmt.Errorf("invalid month %q (want YYYY-MM)", month)
				}
				ref = m
			}
			a, err := opts.open(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.close()
			fmt.Fprint(cmd.OutOrStdout(), formatDates(a.eng.VisibleDates(ref)))
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "reference month (YYYY-MM), default current")
	return cmd
}

// listCmd implements 'planner list'.
func listCmd(opts *rootOptions) *cobra.Command {
	var date, field, categoryID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tasks for a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := parseDay(date)
			if err != nil {
				return err
			}
			a, err := opts.open(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer a.close()

			if field != "" {
				f, err := view.ParseDateField(field)
				if err != nil {
					return err
				}
				a.eng.SetDateFilterField(f)
			}
			a.eng.SetSelectedDate(day)
			a.eng.SetActiveCategory(categoryID)
			fmt.Fprint(cmd.OutOrStdout(), formatTaskList(a.eng.FilteredTasks(), a.eng.ResolveCategory))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day to show (YYYY-MM-DD), default today")
	cmd.Flags().StringVar(&field, "field", "", "match tasks by 'due' or 'created' date")
	cmd.Flags().StringVarP(&categoryID, "category", "c", "", "only tasks in this category")
	return cmd
}

// addCmd implements 'planner add'.
func addCmd(opts *rootOptions) *cobra.Command {
	var description, priority, categoryID, due string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := task.ParsePriority(priority)
			if err != nil {
				return err
			}
			draft := task.Draft{Title: args[0], Description: description, Priority: p, Category: categoryID}
			if due != "" {
				d, err := parseDay(due)
				if err != nil {
					return err
				}
				draft.DueDate = &d
			}

			a, err := opts.open(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer a.close()

			t, err := a.eng.AddTask(cmd.Context(), draft)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatTask(t, a.eng.ResolveCategory))
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "task description")
	cmd.Flags().StringVarP(&priority, "priority", "p", "normal", "priority (high, normal, low, crucial, optional)")
	cmd.Flags().StringVarP(&categoryID, "category", "c", "", "category id")
	cmd.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD)")
	return cmd
}

// toggleCmd implements 'planner toggle'.
func toggleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a task between done and pending",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer a.close()

			changed, err := a.eng.ToggleTaskCompletion(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !changed {
				fmt.Fprintf(cmd.OutOrStdout(), "No task %s\n", args[0])
				return nil
			}
			t, _ := a.eng.Task(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", t.ID, humanDone(t.Completed))
			return nil
		},
	}
}

// deleteCmd implements 'planner delete'.
func deleteCmd(opts *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer a.close()

			var confirmer engine.Confirmer = promptConfirmer{in: cmd.InOrStdin(), out: cmd.OutOrStdout()}
			if yes {
				confirmer = engine.ConfirmFunc(alwaysConfirm)
			}
			removed, err := engine.ConfirmAndDelete(cmd.Context(), a.eng, args[0], confirmer)
			if err != nil {
				return err
			}
			if removed {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing deleted")
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// categoriesCmd implements 'planner categories'.
func categoriesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage categories",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.open(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer a.close()
			fmt.Fprint(cmd.OutOrStdout(), formatCategories(a.eng.Categories()))
			return nil
		},
	}

	var color, icon string
	add := &cobra.Command{
		Use:   "add <id> <name>",
		Short: "Add or rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer a.close()
			c := task.Category{ID: args[0], Name: args[1], Color: color, Icon: icon}
			if err := a.eng.PutCategory(cmd.Context(), c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved category %s\n", c.ID)
			return nil
		},
	}
	add.Flags().StringVar(&color, "color", "", "display color")
	add.Flags().StringVar(&icon, "icon", "", "display icon")

	cmd.AddCommand(list, add)
	return cmd
}
