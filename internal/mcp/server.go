package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tuilad01/excelext/internal/log"
	"github.com/tuilad01/excelext/internal/style"
	"github.com/tuilad01/excelext/internal/table"
	"github.com/tuilad01/excelext/internal/xlsx"
)

// Server wraps the MCP server
type Server struct {
	mcpServer *server.MCPServer
}

// New creates a new MCP server with all tools registered
func New(version string) *Server {
	s := server.NewMCPServer(
		"excelext",
		version,
		server.WithToolCapabilities(true),
	)

	srv := &Server{mcpServer: s}
	srv.registerTools()

	return srv
}

// Run starts the MCP server on stdio
func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	// sheets tool - List all sheets in workbook
	s.mcpServer.AddTool(mcp.NewTool("sheets",
		mcp.WithDescription("List all sheets in an Excel workbook"),
		mcp.WithString("file", mcp.Required(), mcp.Description("Path to xlsx file")),
	), s.handleSheets)

	// info tool - Get sheet bounds
	s.mcpServer.AddTool(mcp.NewTool("info",
		mcp.WithDescription("Get the bounding rectangle (last populated row and column) and first-row headers of a sheet"),
		mcp.WithString("file", mcp.Required(), mcp.Description("Path to xlsx file")),
		mcp.WithString("sheet", mcp.Description("Sheet name (default: first sheet)")),
	), s.handleInfo)

	// extract_table tool - Region to array of records
	s.mcpServer.AddTool(mcp.NewTool("extract_table",
		mcp.WithDescription("Extract a rectangular region of a sheet as a JSON array of records keyed by column name. "+
			"End bounds default to the sheet's last populated row/column; max_row and max_column cap the result silently"),
		mcp.WithString("file", mcp.Required(), mcp.Description("Path to xlsx file")),
		mcp.WithString("sheet", mcp.Description("Sheet name (default: first sheet)")),
		mcp.WithNumber("start_row", mcp.Description("First row, 1-based (default: 1)")),
		mcp.WithNumber("start_column", mcp.Description("First column, 1-based (default: 1)")),
		mcp.WithNumber("end_row", mcp.Description("Last row (default: sheet bounds)")),
		mcp.WithNumber("end_column", mcp.Description("Last column (default: sheet bounds)")),
		mcp.WithBoolean("has_header", mcp.Description("Use start_row as column names (default: true). When false, columns are named \"Column 1\", \"Column 2\", ...")),
		mcp.WithNumber("max_row", mcp.Description(fmt.Sprintf("Row cap (default: %d, max: %d)", DefaultMaxRow, MaxRowLimit))),
		mcp.WithNumber("max_column", mcp.Description(fmt.Sprintf("Column cap (default: %d, max: %d)", DefaultMaxColumn, MaxColumnLimit))),
	), s.handleExtractTable)

	// render_cells tool - Batch value + style instructions
	s.mcpServer.AddTool(mcp.NewTool("render_cells",
		mcp.WithDescription(fmt.Sprintf("Write values and styles to cells from a list of instructions (max %d). "+
			"Each instruction has address (required), value, type, and optional header, body, bold, italic, underline, border, "+
			"font_size, width, background_hex, background_rgb {r,g,b}, merge_address. A present flag applies its style", MaxInstructions)),
		mcp.WithString("file", mcp.Required(), mcp.Description("Path to xlsx file")),
		mcp.WithString("sheet", mcp.Description("Sheet name (default: first sheet)")),
		mcp.WithBoolean("create", mcp.Description("Create the file and sheet when missing (default: false)")),
		// instructions will be passed as JSON array via BindArguments
	), s.handleRenderCells)

	// style_range tool - Style a single range
	s.mcpServer.AddTool(mcp.NewTool("style_range",
		mcp.WithDescription("Apply presentation attributes to a cell or range"),
		mcp.WithString("file", mcp.Required(), mcp.Description("Path to xlsx file")),
		mcp.WithString("range", mcp.Required(), mcp.Description("Cell or range (e.g., A1, B2:D2)")),
		mcp.WithString("sheet", mcp.Description("Sheet name (default: first sheet)")),
		mcp.WithBoolean("header", mcp.Description("Header style: bold + border")),
		mcp.WithBoolean("body", mcp.Description("Body style: border")),
		mcp.WithBoolean("bold", mcp.Description("Bold font")),
		mcp.WithBoolean("italic", mcp.Description("Italic font")),
		mcp.WithBoolean("underline", mcp.Description("Single underline")),
		mcp.WithBoolean("border", mcp.Description("Thin border on all four sides")),
		mcp.WithString("background", mcp.Description("Background colour: #RRGGBB, #RGB or a CSS colour name")),
		mcp.WithNumber("font_size", mcp.Description("Font size in points")),
		mcp.WithNumber("width", mcp.Description("Width of the column holding the range's first cell")),
		mcp.WithString("merge_to", mcp.Description("Merge from the range to this address")),
	), s.handleStyleRange)
}

// Tool handlers

func (s *Server) handleSheets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file := request.GetString("file", "")

	// Validate path
	validPath, err := ValidateFilePath(file)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	f, err := xlsx.OpenFile(validPath)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	defer f.Close()

	sheets, err := xlsx.GetSheets(f)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(sheets)
}

func (s *Server) handleInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file := request.GetString("file", "")
	sheet := request.GetString("sheet", "")

	validPath, err := ValidateFilePath(file)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	f, err := xlsx.OpenFile(validPath)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	defer f.Close()

	info, err := xlsx.GetSheetInfo(ctx, f, sheet)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(info)
}

func (s *Server) handleExtractTable(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file := request.GetString("file", "")
	sheet := request.GetString("sheet", "")

	opts := table.DefaultOptions()
	opts.StartRow = request.GetInt("start_row", opts.StartRow)
	opts.StartColumn = request.GetInt("start_column", opts.StartColumn)
	opts.HasHeader = request.GetBool("has_header", opts.HasHeader)
	opts.MaxRow = min(request.GetInt("max_row", DefaultMaxRow), MaxRowLimit)
	opts.MaxColumn = min(request.GetInt("max_column", DefaultMaxColumn), MaxColumnLimit)

	args := request.GetArguments()
	if _, ok := args["end_row"]; ok {
		v := request.GetInt("end_row", 0)
		opts.EndRow = &v
	}
	if _, ok := args["end_column"]; ok {
		v := request.GetInt("end_column", 0)
		opts.EndColumn = &v
	}

	validPath, err := ValidateFilePath(file)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	f, err := xlsx.OpenFile(validPath)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	defer f.Close()

	tbl, err := table.ExtractSheet(ctx, f, sheet, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(tbl)
}

func (s *Server) handleRenderCells(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file := request.GetString("file", "")
	sheet := request.GetString("sheet", "")
	create := request.GetBool("create", false)

	// Parse instructions from request arguments using BindArguments
	var args struct {
		Instructions []style.Instruction `json:"instructions"`
	}
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to parse instructions: %v", err)), nil
	}

	if len(args.Instructions) == 0 {
		return mcp.NewToolResultError("no instructions provided"), nil
	}
	if len(args.Instructions) > MaxInstructions {
		return mcp.NewToolResultError(fmt.Sprintf("too many instructions: %d exceeds limit of %d", len(args.Instructions), MaxInstructions)), nil
	}

	return s.render(file, sheet, create, args.Instructions)
}

func (s *Server) handleStyleRange(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file := request.GetString("file", "")
	sheet := request.GetString("sheet", "")

	rng := request.GetString("range", "")
	if !xlsx.IsValidRange(rng) {
		return mcp.NewToolResultError(fmt.Sprintf("invalid range %q", rng)), nil
	}

	in := style.Instruction{
		Address:       rng,
		BackgroundHex: request.GetString("background", ""),
		MergeAddress:  request.GetString("merge_to", ""),
	}
	// Only flags passed as true take effect here.
	flags := map[string]**bool{
		"header":    &in.Header,
		"body":      &in.Body,
		"bold":      &in.Bold,
		"italic":    &in.Italic,
		"underline": &in.Underline,
		"border":    &in.Border,
	}
	for name, field := range flags {
		if request.GetBool(name, false) {
			on := true
			*field = &on
		}
	}
	args := request.GetArguments()
	if _, ok := args["font_size"]; ok {
		v := request.GetFloat("font_size", 0)
		in.FontSize = &v
	}
	if _, ok := args["width"]; ok {
		v := request.GetFloat("width", 0)
		in.Width = &v
	}

	return s.render(file, sheet, false, []style.Instruction{in})
}

func (s *Server) render(file, sheet string, create bool, instructions []style.Instruction) (*mcp.CallToolResult, error) {
	validPath, err := ValidateWritePath(file, create)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := style.RenderFile(validPath, sheet, create, instructions)
	if err != nil {
		log.Named("mcp").Warnw("render failed", "file", validPath, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(result)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("JSON encoding error: %v", err)), nil
	}

	// Check output size limit
	if len(data) > MaxOutputBytes {
		return mcp.NewToolResultError(fmt.Sprintf("Output too large (%d bytes, max %d bytes). Try reducing the region or max_row.", len(data), MaxOutputBytes)), nil
	}

	return mcp.NewToolResultText(string(data)), nil
}
