// Command pigeonhole organizes the files of a directory into YYYYMM
// date-bucket subdirectories after an interactive preview and confirmation.
package main
