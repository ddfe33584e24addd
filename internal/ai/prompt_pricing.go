// prompt_pricing.go - Prompt for the pricing consultant persona

package ai

import (
	"fmt"
	"strings"

	"github.com/dixra/hpp_smart_pricing/internal/pricing"
)

// BuildPricingPrompt embeds the product, its computed metrics and the market context
// into the instruction for the model. Empty context fields are sent as "-".
func BuildPricingPrompt(product pricing.ProductData, context pricing.AIContextData, calc pricing.CalculationResult) string {
	var sb strings.Builder

	sb.WriteString("Anda adalah Konsultan Bisnis Senior sekaligus Analis Harga untuk pasar Indonesia.\n\n")
	sb.WriteString("Berikan rekomendasi harga jual berdasarkan data berikut.\n\n")

	sb.WriteString("DATA PRODUK:\n")
	sb.WriteString(fmt.Sprintf("- Nama Produk: %s\n", product.Name))
	sb.WriteString(fmt.Sprintf("- HPP (Total Biaya Modal): %s\n", pricing.FormatRupiah(calc.TotalCost)))
	sb.WriteString(fmt.Sprintf("- Harga Jual Saat Ini: %s\n", pricing.FormatRupiah(product.SellingPrice)))
	sb.WriteString(fmt.Sprintf("- Margin Saat Ini: %s\n\n", pricing.FormatPercent(calc.MarginPercent)))

	sb.WriteString("KONTEKS PASAR:\n")
	sb.WriteString(fmt.Sprintf("- Jenis Usaha: %s\n", orDash(context.BusinessType)))
	sb.WriteString(fmt.Sprintf("- Lokasi: %s\n", orDash(context.Location)))
	sb.WriteString(fmt.Sprintf("- Target Pelanggan: %s\n", orDash(context.TargetAudience)))
	sb.WriteString(fmt.Sprintf("- Musim: %s\n", orDash(context.Season)))
	sb.WriteString(fmt.Sprintf("- Kualitas: %s\n\n", orDash(context.Quality)))

	sb.WriteString(`TUGAS:
1. Perkirakan rentang harga pasar yang wajar untuk lokasi dan target pelanggan tersebut.
2. Tentukan satu harga jual optimal yang memberi profit sehat namun tetap kompetitif.
3. Nilai apakah harga jual saat ini terlalu mahal, terlalu murah, atau sudah pas.
4. Isi "warning" jika margin terlalu tipis atau harga tidak wajar; jika tidak ada, isi string kosong.
5. Berikan 2-3 saran strategi singkat (bundling, promo, paket, dll).

Gunakan logika bisnis yang kuat. Jangan mengarang data spesifik yang tidak Anda ketahui; gunakan estimasi rentang yang umum di industri tersebut.
Semua harga dalam Rupiah tanpa titik pemisah ribuan.
Jawab HANYA dengan JSON sesuai schema, tanpa teks lain.
`)

	return sb.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
