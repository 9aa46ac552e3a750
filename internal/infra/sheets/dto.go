package sheets

// --- RESPONSE: values.get ---

type valuesResponse struct {
	Values [][]any `json:"values"`
}

// --- PAYLOAD: values.update / values.append ---

type valuesRequest struct {
	Values [][]string `json:"values"`
}

// --- PAYLOAD/RESPONSE: spreadsheet meta + addSheet ---

type spreadsheetResponse struct {
	Sheets []struct {
		Properties sheetProperties `json:"properties"`
	} `json:"sheets"`
}

type sheetProperties struct {
	Title string `json:"title"`
}

type batchUpdateRequest struct {
	Requests []batchUpdateEntry `json:"requests"`
}

type batchUpdateEntry struct {
	AddSheet *addSheetRequest `json:"addSheet,omitempty"`
}

type addSheetRequest struct {
	Properties sheetProperties `json:"properties"`
}
