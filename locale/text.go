package locale

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Key names a UI string.
type Key string

const (
	KeyPageTitle       Key = "page_title"
	KeyTitle           Key = "title"
	KeySubtitle        Key = "subtitle"
	KeyFilterHeader    Key = "filter_header"
	KeyFilterClient    Key = "filter_client"
	KeyFilterProduct   Key = "filter_product"
	KeyFilterMonth     Key = "filter_month"
	KeyApply           Key = "apply"
	KeyTotalRevenue    Key = "total_revenue"
	KeyTotalUnits      Key = "total_units"
	KeyRestockCount    Key = "restock_count"
	KeyUniqueClients   Key = "unique_clients"
	KeyChartByProduct  Key = "chart_by_product"
	KeyChartByMonth    Key = "chart_by_month"
	KeyMonth           Key = "month"
	KeyLowStockHeader  Key = "low_stock_header"
	KeyLowStockNone    Key = "low_stock_none"
	KeyAlertHeader     Key = "alert_header"
	KeyAlertInfo       Key = "alert_info"
	KeyAlertSubject    Key = "alert_subject"
	KeyAlertIntro      Key = "alert_intro"
	KeyAlertAction     Key = "alert_action"
	KeyAlertFooter     Key = "alert_footer"
	KeyAlertTo         Key = "alert_to"
	KeyAlertSubjectLbl Key = "alert_subject_label"
	KeyAlertBody       Key = "alert_body"
	KeyTableHeader     Key = "table_header"
	KeyTableCaption    Key = "table_caption"
	KeyDownloadXLSX    Key = "download_xlsx"
	KeyDownloadCSV     Key = "download_csv"
	KeyAllDataHeader   Key = "all_data_header"
	KeyAllDataCaption  Key = "all_data_caption"
	KeyLanguage        Key = "language"
	KeyExportSheet     Key = "export_sheet"
)

var texts = map[Key]map[Lang]string{
	KeyPageTitle:       {Japanese: "NISSILI ダッシュボード", English: "NISSILI Dashboard"},
	KeyTitle:           {Japanese: "在庫・販売ダッシュボード", English: "Inventory & Sales Dashboard"},
	KeySubtitle:        {Japanese: "最新の在庫と販売データを一目で確認", English: "See the latest inventory and sales data at a glance"},
	KeyFilterHeader:    {Japanese: "🔎 データ絞り込み", English: "🔎 Filter Data"},
	KeyFilterClient:    {Japanese: "顧客で絞り込み", English: "Filter by Client"},
	KeyFilterProduct:   {Japanese: "製品名で絞り込み", English: "Filter by Product"},
	KeyFilterMonth:     {Japanese: "月で絞り込み", English: "Filter by Month (YYYY-MM)"},
	KeyApply:           {Japanese: "適用", English: "Apply"},
	KeyTotalRevenue:    {Japanese: "💰 売上合計", English: "💰 Total Revenue (¥)"},
	KeyTotalUnits:      {Japanese: "📦 販売数量合計", English: "📦 Total Units Sold"},
	KeyRestockCount:    {Japanese: "⚠️ 要補充件数", English: "⚠️ Items Needing Restock"},
	KeyUniqueClients:   {Japanese: "👥 取引先数", English: "👥 Unique Clients"},
	KeyChartByProduct:  {Japanese: "製品別販売数量", English: "Sales Volume by Product"},
	KeyChartByMonth:    {Japanese: "月別販売数量の推移", English: "Monthly Sales Trend"},
	KeyMonth:           {Japanese: "月", English: "Month"},
	KeyLowStockHeader:  {Japanese: "⚠️ 現在の低在庫リスト", English: "⚠️ Current Low Inventory List"},
	KeyLowStockNone:    {Japanese: "要補充の在庫はありません。", English: "No items currently need restocking."},
	KeyAlertHeader:     {Japanese: "📧 メール通知シミュレーション", English: "📧 Simulated Email Notification"},
	KeyAlertInfo:       {Japanese: "在庫が発注点を下回った際に送信される自動メール通知のプレビューです。", English: "This is a preview of an automated email alert triggered when stock falls below reorder level."},
	KeyAlertSubject:    {Japanese: "🚨 在庫不足アラート — 補充が必要です", English: "🚨 Low Stock Alert — Immediate Restock Required"},
	KeyAlertIntro:      {Japanese: "以下の製品が発注点を下回っています:", English: "The following products are below their reorder level:"},
	KeyAlertAction:     {Japanese: "至急、補充手配をお願いいたします。", English: "Please initiate restock procedures as soon as possible."},
	KeyAlertFooter:     {Japanese: "この通知はNISSILI在庫ダッシュボードによって自動生成されました。", English: "This alert was generated by the NISSILI Inventory Dashboard."},
	KeyAlertTo:         {Japanese: "宛先", English: "To"},
	KeyAlertSubjectLbl: {Japanese: "件名", English: "Subject"},
	KeyAlertBody:       {Japanese: "本文", English: "Body"},
	KeyTableHeader:     {Japanese: "📋 フィルター適用中の在庫リスト", English: "📋 Filtered Inventory List"},
	KeyTableCaption:    {Japanese: "現在の条件で絞り込まれた取引、商品、在庫データを表示しています。", English: "Shows transaction, product, and stock data based on active filters."},
	KeyDownloadXLSX:    {Japanese: "📥 Excel形式でダウンロード (フィルター適用データ)", English: "📥 Download Filtered Data as Excel"},
	KeyDownloadCSV:     {Japanese: "📥 CSV形式でダウンロード", English: "📥 Download Filtered Data as CSV"},
	KeyAllDataHeader:   {Japanese: "全在庫データ（フィルターなし）", English: "Show All Inventory Data (Unfiltered)"},
	KeyAllDataCaption:  {Japanese: "すべての取引、商品、在庫データを表示します。", English: "Displays all transaction, product, and stock data (no filters)."},
	KeyLanguage:        {Japanese: "言語 / Language", English: "言語 / Language"},
	KeyExportSheet:     {Japanese: "在庫", English: "Inventory"},
}

// Text returns the UI string for k, falling back to the key itself.
func Text(k Key, l Lang) string {
	if s, ok := texts[k][l]; ok {
		return s
	}
	return string(k)
}

// =============================================================================
// NUMBERS
// =============================================================================

func printer(l Lang) *message.Printer {
	if l == English {
		return message.NewPrinter(language.English)
	}
	return message.NewPrinter(language.Japanese)
}

// FormatInt renders n with grouping separators, e.g. 12,345.
func FormatInt(n int64, l Lang) string {
	return printer(l).Sprintf("%d", n)
}

// FormatAmount renders a yen amount with grouping. Japanese appends 円;
// English relies on the (¥) in the label.
func FormatAmount(d decimal.Decimal, l Lang) string {
	var s string
	if d.IsInteger() {
		s = printer(l).Sprintf("%d", d.IntPart())
	} else {
		s = printer(l).Sprintf("%.2f", d.InexactFloat64())
	}
	if l == English {
		return s
	}
	return fmt.Sprintf("%s 円", s)
}
