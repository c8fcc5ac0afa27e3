package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Setup Google API credentials",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			s := newStyles(out)

			fmt.Fprintln(out, s.Title.Render("oneonone Setup"))
			fmt.Fprintln(out)
			fmt.Fprintln(out, "To use this tool, you need to:")
			fmt.Fprintln(out)
			fmt.Fprintln(out, "1. Go to the Google Cloud Console:")
			fmt.Fprintln(out, s.Link.Render("   https://console.cloud.google.com"))
			fmt.Fprintln(out)
			fmt.Fprintln(out, "2. Create a new project or select an existing one")
			fmt.Fprintln(out)
			fmt.Fprintln(out, "3. Enable the following APIs:")
			fmt.Fprintln(out, "   - Google Docs API")
			fmt.Fprintln(out, "   - Google Drive API")
			fmt.Fprintln(out, "   - Admin SDK API (optional, for user search)")
			fmt.Fprintln(out)
			fmt.Fprintln(out, "4. Create OAuth 2.0 credentials:")
			fmt.Fprintln(out, "   - Go to APIs & Services > Credentials")
			fmt.Fprintln(out, "   - Create credentials > OAuth client ID")
			fmt.Fprintln(out, "   - Application type: Desktop app")
			fmt.Fprintln(out, "   - Download the credentials")
			fmt.Fprintln(out)
			fmt.Fprintln(out, `5. Save the credentials as "credentials.json" in this directory`)
			fmt.Fprintln(out, "   (or point ONEONONE_CREDENTIALS_FILE / --credentials at them)")
			fmt.Fprintln(out)
			fmt.Fprintln(out, `6. Run "oneonone create" to start creating documents!`)
		},
	}
}
