package cmd

func RegisterBaseCommands() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(verifyCmd)
}
