package ui

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/whatsapp-notebooklm/internal/models"
)

var (
	// Color definitions for terminal output
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	boldColor    = color.New(color.Bold)
)

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	successColor.Printf("✓ %s\n", msg)
}

// PrintError prints an error message
func PrintError(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	errorColor.Printf("✗ %s\n", msg)
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	warningColor.Printf("⚠ %s\n", msg)
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	infoColor.Printf("ℹ %s\n", msg)
}

// PrintBanner prints the welcome banner and what the tool needs
func PrintBanner(w io.Writer) {
	title := Styles.BannerText.Render("WhatsApp Chat to NotebookLM Converter")
	fmt.Fprintln(w, Styles.Banner.Render(title))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "This tool converts your WhatsApp chat export into markdown files")
	fmt.Fprintln(w, "that can be uploaded to NotebookLM for AI-powered chat analysis.")
	fmt.Fprintln(w)
	boldColor.Fprintln(w, "What you'll need:")
	fmt.Fprintln(w, "- A WhatsApp chat export folder (containing .txt file and media)")
	fmt.Fprintln(w, "- A destination folder where the converted files will be saved")
	fmt.Fprintln(w)
}

// PrintStep prints a numbered step heading
func PrintStep(w io.Writer, n int, icon, title string, lines ...string) {
	fmt.Fprintln(w)
	boldColor.Fprintf(w, "%s STEP %d: %s\n", icon, n, title)
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}

// PrintReport prints the success summary of a run
func PrintReport(w io.Writer, run *models.ConversionRun) {
	fmt.Fprintln(w)

	if len(run.Files) == 0 {
		warningColor.Fprintln(w, "⚠ No dated messages were found, nothing was written.")
		fmt.Fprintf(w, "Chat file: %s\n", run.ChatFile)
		return
	}

	headline := fmt.Sprintf("%s\n\n📁 All files created in: %s",
		successColor.Sprint("✅ SUCCESS! Processing complete!"),
		run.OutputFolder,
	)
	fmt.Fprintln(w, Styles.SuccessBox.Render(headline))

	files := append([]string(nil), run.Files...)
	sort.Strings(files)

	fmt.Fprintf(w, "\n📄 Created %d markdown files:\n", len(files))
	for _, name := range files {
		fmt.Fprintf(w, "   - %s\n", name)
	}

	if total := run.Media.Total(); total > 0 {
		fmt.Fprintf(w, "\n🖼  Media references rewritten: %d\n", total)
	}

	fmt.Fprintln(w)
	boldColor.Fprintln(w, "🎉 NEXT STEPS:")
	fmt.Fprintln(w, "1. Go to https://notebooklm.google.com")
	fmt.Fprintln(w, "2. Create a new notebook")
	fmt.Fprintln(w, "3. Upload all the markdown (.md) files from your output folder")
	fmt.Fprintln(w, "4. Start asking questions about your WhatsApp conversations!")
	fmt.Fprintln(w)
	boldColor.Fprintln(w, "💡 TIPS:")
	fmt.Fprintln(w, "- Images are embedded directly in the markdown files")
	fmt.Fprintln(w, "- You can ask questions like 'What happened in January 2024?'")
	fmt.Fprintln(w, "- Videos/audio/documents are referenced but not uploaded")
	fmt.Fprintln(w, "- Each month is a separate file for faster searching")
}

// PrintFailure prints a short diagnostic with the checks worth making
func PrintFailure(w io.Writer, err error) {
	content := fmt.Sprintf("%s\n\n%v",
		errorColor.Sprint("❌ ERROR"),
		err,
	)
	fmt.Fprintln(w)
	fmt.Fprintln(w, Styles.ErrorBox.Render(content))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Please check:")
	fmt.Fprintln(w, "- The WhatsApp export folder contains a .txt file")
	fmt.Fprintln(w, "- You have write permissions to the output folder")
	fmt.Fprintln(w, "- The folder paths are correct")
}
