package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/ymgta/jobdraft-api/internal/models"
)

// SeedReferenceData inserts the industries and their hearing questionnaires
// when the industry table is empty. Industries are immutable reference data,
// so this runs exactly once per fresh database.
func SeedReferenceData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Industry{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count industries: %w", err)
	}
	if count > 0 {
		return nil
	}

	seeds := []struct {
		name  string
		items []models.HearingItem
	}{
		{
			name: "IT・ソフトウェア",
			items: []models.HearingItem{
				{Question: "募集する職種名を教えてください", Description: "例: バックエンドエンジニア", InputType: models.InputTypeText, Required: true, Order: 0},
				{Question: "主な業務内容を教えてください", InputType: models.InputTypeTextarea, Required: true, Order: 1},
				{Question: "必須となる技術スタックを教えてください", Description: "例: Go, PostgreSQL, AWS", InputType: models.InputTypeTextarea, Required: true, Order: 2},
				{Question: "想定する経験年数を選択してください", InputType: models.InputTypeSelect, Options: models.StringList{"未経験可", "1〜3年", "3〜5年", "5年以上"}, Required: true, Order: 3},
				{Question: "勤務形態を選択してください", InputType: models.InputTypeSelect, Options: models.StringList{"出社", "ハイブリッド", "フルリモート"}, Required: false, Order: 4},
			},
		},
		{
			name: "飲食・フード",
			items: []models.HearingItem{
				{Question: "募集するポジションを教えてください", Description: "例: ホールスタッフ、調理スタッフ", InputType: models.InputTypeText, Required: true, Order: 0},
				{Question: "店舗の業態と客層を教えてください", InputType: models.InputTypeTextarea, Required: true, Order: 1},
				{Question: "雇用形態を選択してください", InputType: models.InputTypeSelect, Options: models.StringList{"正社員", "契約社員", "アルバイト・パート"}, Required: true, Order: 2},
				{Question: "シフトや勤務時間の希望条件を教えてください", InputType: models.InputTypeTextarea, Required: false, Order: 3},
			},
		},
		{
			name: "小売・販売",
			items: []models.HearingItem{
				{Question: "募集する職種名を教えてください", InputType: models.InputTypeText, Required: true, Order: 0},
				{Question: "取り扱う商品やサービスを教えてください", InputType: models.InputTypeTextarea, Required: true, Order: 1},
				{Question: "接客経験の要否を選択してください", InputType: models.InputTypeSelect, Options: models.StringList{"不問", "あれば尚可", "必須"}, Required: true, Order: 2},
			},
		},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, s := range seeds {
			industry := models.Industry{Name: s.name}
			if err := tx.Create(&industry).Error; err != nil {
				return fmt.Errorf("seed industry %q: %w", s.name, err)
			}
			for i := range s.items {
				s.items[i].IndustryID = industry.ID
			}
			if err := tx.Create(&s.items).Error; err != nil {
				return fmt.Errorf("seed hearing items for %q: %w", s.name, err)
			}
		}
		return nil
	})
}
