package cmd

import (
	"fmt"
	"os"

	"folio/internal/models"
	"folio/internal/services"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Inspect background jobs",
}

var jobShowCmd = &cobra.Command{
	Use:   "show <job_id>",
	Short: "Show a background job and its result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jobID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid job ID '%s': %w", args[0], err)
		}
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		job, err := appInstance.CategorizationService.GetJob(cmd.Context(), jobID)
		if err != nil {
			return fmt.Errorf("failed to get job: %w", err)
		}
		fmt.Printf("Job:     %s\n", job.JobID)
		fmt.Printf("Type:    %s\n", job.TaskType)
		fmt.Printf("Status:  %s\n", statusString(job.Status))
		fmt.Printf("Updated: %s\n", job.UpdatedAt.Format("2006-01-02 15:04:05"))

		result, err := services.JobResult(job)
		if err != nil {
			return err
		}
		if result != nil {
			renderBatchResult(os.Stdout, *result)
		}
		return nil
	},
}

func statusString(status string) string {
	switch status {
	case models.JobStatusCompleted:
		return color.GreenString(status)
	case models.JobStatusFailed:
		return color.RedString(status)
	case models.JobStatusRunning:
		return color.YellowString(status)
	default:
		return status
	}
}

func init() {
	rootCmd.AddCommand(jobCmd)
	jobCmd.AddCommand(jobShowCmd)
}
