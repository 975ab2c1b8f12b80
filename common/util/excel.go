package util

import (
	"time"

	"github.com/xuri/excelize/v2"
)

func MakeExcelFromData(data [][]interface{}, columns []string) *excelize.File {
	f := excelize.NewFile()
	for i, columnName := range columns {
		aixs, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue("Sheet1", aixs, columnName)
	}
	for row, rowValues := range data {
		for col, val := range rowValues {
			aixs, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue("Sheet1", aixs, val)
		}
	}
	return f
}

func GetExcelFileName(model string) string {
	return model + time.Now().UTC().Format("20060102") + ".xlsx"
}
