// Package github reads the issue list of one repository from the GitHub REST
// API and builds the deep links the board hands off to github.com.
//
// The package is isolated from UI concerns. It returns domain.Issue values
// that the refresh layer categorizes and the UIs present.
//
// Example usage:
//
//	client := github.NewClient("GanlandNFT", "gan-schedule")
//	issues, err := client.FetchAllIssues(ctx)
//	if err != nil {
//	    // err.Error() == "Failed to fetch issues"
//	}
//	board := domain.Categorize(issues)
package github
